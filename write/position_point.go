package write

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/leverage/position"
)

func NewPositionPoint(timestamp time.Time, denom string, p position.Position, metrics position.Metrics) *write.Point {

	leverage := humanize.Ftoa(p.Leverage.InexactFloat64()) + "x"

	tags := map[string]string{
		"strategy": "loop",
		"denom":    denom,
		"size":     size(p.Principal),
		"leverage": leverage,
	}
	fields := map[string]interface{}{
		"principal":     p.Principal.InexactFloat64(),
		"collateral":    p.Collateral.InexactFloat64(),
		"debt":          p.Debt.InexactFloat64(),
		"borrow":        metrics.BorrowAmount.InexactFloat64(),
		"total":         metrics.TotalPosition.InexactFloat64(),
		"leveraged_apy": metrics.LeveragedAPY.InexactFloat64(),
		"spread":        metrics.YieldSpread.InexactFloat64(),
		"earnings":      metrics.EstimatedYearlyEarnings.InexactFloat64(),
	}

	return write.NewPoint(measurement, tags, fields, timestamp)
}

func PositionPoint(timestamp time.Time, denom string, p position.Position, metrics position.Metrics, outbound api.WriteAPI) {
	outbound.WritePoint(NewPositionPoint(timestamp, denom, p, metrics))
}
