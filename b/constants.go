package b

// Precision is the number of fractional digits kept by every division.
const Precision = 36

var (
	HPY = D365.Mul(D24)  // hours per year
	SPY = HPY.Mul(D3600) // seconds per year

	Percent = D1.Div(D100)
)
