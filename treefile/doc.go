// Package treefile reads navigation trees from YAML files and watches them
// for changes.
//
// A tree file holds the root node:
//
//	id: root
//	children:
//	  - id: home
//	    label: Home
//	    url: /
//	    totalHits: 120
//	    mostRecentHit: 2026-10-01T12:00:00Z
//	  - id: orders
//	    label: Orders
//	    children:
//	      - id: orders-history
//	        label: History
//	        url: /orders/history
//	        keywords: [past orders]
package treefile
