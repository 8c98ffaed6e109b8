// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"math"
)

// ResultKind identifies the source and presentation of a search result.
type ResultKind int

const (
	KindPage ResultKind = iota + 1
	KindAdminPage
	KindRecentPage
	KindMerchant
	KindFrequentPage
	KindOrder
	KindProduct
	KindFineDisplayItem
	KindWarning
	KindZendesk
	KindTrackingDispute
)

// AllKinds lists every ResultKind in declaration order.
var AllKinds = []ResultKind{
	KindPage,
	KindAdminPage,
	KindRecentPage,
	KindMerchant,
	KindFrequentPage,
	KindOrder,
	KindProduct,
	KindFineDisplayItem,
	KindWarning,
	KindZendesk,
	KindTrackingDispute,
}

// String returns the wire name of the kind.
func (k ResultKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindAdminPage:
		return "admin_page"
	case KindRecentPage:
		return "recent_page"
	case KindMerchant:
		return "merchant"
	case KindFrequentPage:
		return "frequent_page"
	case KindOrder:
		return "order"
	case KindProduct:
		return "product"
	case KindFineDisplayItem:
		return "fine_display_item"
	case KindWarning:
		return "warning"
	case KindZendesk:
		return "zendesk"
	case KindTrackingDispute:
		return "tracking_dispute"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Label returns the default display title for groups of this kind.
func (k ResultKind) Label() string {
	switch k {
	case KindPage:
		return "Pages"
	case KindAdminPage:
		return "Admin Pages"
	case KindRecentPage:
		return "Recently Visited"
	case KindMerchant:
		return "Merchants"
	case KindFrequentPage:
		return "Frequently Visited"
	case KindOrder:
		return "Orders"
	case KindProduct:
		return "Products"
	case KindFineDisplayItem:
		return "Fines"
	case KindWarning:
		return "Warnings"
	case KindZendesk:
		return "Help Center"
	case KindTrackingDispute:
		return "Tracking Disputes"
	default:
		return k.String()
	}
}

// Priority returns the group ordering priority; lower sorts first.
// Kinds outside the closed set sort after every known kind.
func (k ResultKind) Priority() int {
	switch k {
	case KindPage, KindMerchant, KindOrder, KindProduct,
		KindFineDisplayItem, KindWarning, KindTrackingDispute:
		return 1
	case KindAdminPage:
		return 2
	case KindZendesk:
		return 3
	case KindRecentPage:
		return 4
	case KindFrequentPage:
		return 5
	default:
		return math.MaxInt
	}
}

// Valid reports whether k is a member of the closed set.
func (k ResultKind) Valid() bool {
	return k >= KindPage && k <= KindTrackingDispute
}

// ParseResultKind resolves a wire name to a ResultKind.
func ParseResultKind(s string) (ResultKind, error) {
	for _, k := range AllKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResultKind, s)
}

// ObjectKindFromServer maps the type reported by the direct object lookup
// service to a ResultKind.
func ObjectKindFromServer(serverType string) (ResultKind, bool) {
	switch serverType {
	case "MERCHANT":
		return KindMerchant, true
	case "ORDER":
		return KindOrder, true
	case "WARNING":
		return KindWarning, true
	case "PRODUCT":
		return KindProduct, true
	default:
		return 0, false
	}
}
