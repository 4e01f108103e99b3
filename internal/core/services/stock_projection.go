package services

import (
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// projectBalance replays the three transaction logs and nets the quantities
// for one (itemName, warehouseID) pair:
//
//	balance = purchases + sales returns - sales
//
// Purchases and sales match a line when the item name matches and either the
// document header or the line itself carries the warehouse. Sales returns
// resolve the warehouse through the line-first fallback and contribute their
// recorded return quantity, which may be absent and then counts as zero.
//
// Pure over its snapshot arguments, so concurrent per-item calls are safe.
func projectBalance(itemName, warehouseID string, purchases, sales, returns []domain.StockDocument) decimal.Decimal {
	incoming := decimal.Zero
	outgoing := decimal.Zero

	for _, doc := range purchases {
		for _, line := range doc.Lines {
			if matchesHeaderOrLine(line, doc, itemName, warehouseID) {
				incoming = incoming.Add(line.Quantity)
			}
		}
	}

	for _, doc := range returns {
		for _, line := range doc.Lines {
			if line.ItemName != itemName {
				continue
			}
			if line.EffectiveWarehouse(doc.WarehouseID) == warehouseID {
				incoming = incoming.Add(line.ReturnedQuantity())
			}
		}
	}

	for _, doc := range sales {
		for _, line := range doc.Lines {
			if matchesHeaderOrLine(line, doc, itemName, warehouseID) {
				outgoing = outgoing.Add(line.Quantity)
			}
		}
	}

	return incoming.Sub(outgoing)
}

func matchesHeaderOrLine(line domain.StockLine, doc domain.StockDocument, itemName, warehouseID string) bool {
	if line.ItemName != itemName {
		return false
	}
	return doc.WarehouseID == warehouseID || line.WarehouseID == warehouseID
}
