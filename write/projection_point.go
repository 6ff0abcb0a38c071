package write

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/leverage/market"
	"github.com/optakt/leverage/rate"
)

func NewProjectionPoint(timestamp time.Time, snapshot market.Snapshot, action string, rates rate.Rates) *write.Point {

	tags := map[string]string{
		"strategy": "projection",
		"denom":    snapshot.Denom,
		"action":   action,
		"size":     size(snapshot.ValueUSD(snapshot.CollateralTotal)),
	}
	fields := map[string]interface{}{
		"utilization": rates.Utilization.InexactFloat64(),
		"borrow_apr":  rates.BorrowAPR.InexactFloat64(),
		"supply_apr":  rates.SupplyAPR.InexactFloat64(),
		"borrow_apy":  rates.BorrowAPY.InexactFloat64(),
		"supply_apy":  rates.SupplyAPY.InexactFloat64(),
	}

	return write.NewPoint(measurement, tags, fields, timestamp)
}

func ProjectionPoint(timestamp time.Time, snapshot market.Snapshot, action string, rates rate.Rates, outbound api.WriteAPI) {
	outbound.WritePoint(NewProjectionPoint(timestamp, snapshot, action, rates))
}
