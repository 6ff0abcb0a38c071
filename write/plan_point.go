package write

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/position"
	"github.com/optakt/leverage/rebalance"
)

func NewPlanPoint(timestamp time.Time, bal rebalance.Balances, plan rebalance.Plan) *write.Point {

	// MinReceive is in base units of whatever the swap buys.
	out := bal.Collateral.Decimals
	if plan.Direction == position.Decrease {
		out = bal.Debt.Decimals
	}

	routed := "false"
	if plan.Action != nil {
		routed = "true"
	}

	tags := map[string]string{
		"strategy":   "rebalance",
		"collateral": bal.Collateral.Denom,
		"debt":       bal.Debt.Denom,
		"direction":  plan.Direction.String(),
		"routed":     routed,
	}
	fields := map[string]interface{}{
		"collateral":   plan.NewCollateral.InexactFloat64(),
		"debt":         plan.NewDebt.InexactFloat64(),
		"price_impact": plan.PriceImpactPct.InexactFloat64(),
		"min_receive":  b.ToFloat(plan.MinReceive, out),
	}

	return write.NewPoint(measurement, tags, fields, timestamp)
}

func PlanPoint(timestamp time.Time, bal rebalance.Balances, plan rebalance.Plan, outbound api.WriteAPI) {
	outbound.WritePoint(NewPlanPoint(timestamp, bal, plan))
}
