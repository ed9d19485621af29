package scoring

// Policy agrupa todas las constantes heurísticas del motor de recomendaciones.
// Los valores no se derivan de datos: son reglas de negocio ajustables por
// configuración (ver pkg/config, prefijo SCORING_).
type Policy struct {
	// ── Potencial del cliente ────────────────────────────────────────────────
	RecencyWeight            float64 // peso de los días desde la última compra
	FrequencyWeight          float64 // peso de los días promedio entre compras
	SpendDivisor             float64 // el gasto total se resta como spend/SpendDivisor
	NoPurchaseRecencyDays    int     // recencia centinela cuando no hay facturas
	RecentBuyerDays          int     // recencia < N → cliente activo
	WarmBuyerDays            int     // recencia < N → reactivación
	HighSpendThreshold       float64 // gasto total > N → cliente de alto valor
	HighAnnualValueThreshold float64 // valor anual estimado > N → plan de cuenta

	// ── Upsell / venta cruzada ───────────────────────────────────────────────
	MaxDaysSinceLastOrder    int     // sin compras en más de N días → no se evalúa
	DueFactor                float64 // días desde la última ≥ promedio*DueFactor → toca pedido
	GrowthMinInvoices        int     // mínimo de facturas para calcular crecimiento
	HighValueOrderThreshold  float64 // ticket promedio > N → upsell premium
	MidValueOrderThreshold   float64 // ticket promedio > N → upsell estándar
	GrowthExpansionPct       float64 // crecimiento > N% → expansión de cuenta
	DeclineRecoveryPct       float64 // crecimiento < N% → recuperación
	ReorderMultiplier        float64
	CrossSellMultiplier      float64
	PremiumUpsellMultiplier  float64
	StandardUpsellMultiplier float64
	VolumeUpsellMultiplier   float64
	GrowthMultiplier         float64
	RecoveryMultiplier       float64
	RecoveryFloor            float64 // valor esperado mínimo en recuperación

	// ── Journey del cliente ──────────────────────────────────────────────────
	ActiveDays              int     // ≤ N días desde la última actividad → Active
	RecentDays              int     // ≤ N → Recent
	LapsedDays              int     // ≤ N → Lapsed; si no, Inactive
	GoodPayerRatio          float64 // pagado/facturado ≥ N → GoodPayer
	PartialPayerRatio       float64 // ≥ N → PartialPayer
	StandardPaymentTermDays int     // plazo estándar de pago (condiciones comerciales)
	EarlyPaymentFactor      float64 // días < plazo*N → Early
	MaxPaymentDelayDays     int     // enlaces de pago fuera de [0, N) se excluyen del promedio
	PaymentTolerance        float64 // tolerancia monetaria para considerar pagada una factura

	// ── Desempeño del agente ─────────────────────────────────────────────────
	RecentSalesDays       int
	VelocityMonths        int
	TopPerformerSales     float64
	SolidPerformerSales   float64
	AveragePerformerSales float64
	LowConversionRate     float64
	HighConversionRate    float64
	SmallDealSize         float64
	LowVelocity           float64
	HighCustomerLoad      int
	LowCustomerLoad       int

	// ── Insights ─────────────────────────────────────────────────────────────
	BenchmarkFactor float64 // benchmark sintético = promedio real * N (placeholder)
	TrendBandPct    float64 // variación dentro de ±N% → stable

	DefaultTopN int
}

// DefaultPolicy devuelve los valores históricos de las reglas.
func DefaultPolicy() Policy {
	return Policy{
		RecencyWeight:            0.4,
		FrequencyWeight:          0.3,
		SpendDivisor:             1000,
		NoPurchaseRecencyDays:    365,
		RecentBuyerDays:          30,
		WarmBuyerDays:            90,
		HighSpendThreshold:       10000,
		HighAnnualValueThreshold: 20000,

		MaxDaysSinceLastOrder:    120,
		DueFactor:                0.8,
		GrowthMinInvoices:        4,
		HighValueOrderThreshold:  5000,
		MidValueOrderThreshold:   1000,
		GrowthExpansionPct:       20,
		DeclineRecoveryPct:       -10,
		ReorderMultiplier:        1.2,
		CrossSellMultiplier:      0.5,
		PremiumUpsellMultiplier:  0.3,
		StandardUpsellMultiplier: 0.25,
		VolumeUpsellMultiplier:   0.5,
		GrowthMultiplier:         2,
		RecoveryMultiplier:       0.5,
		RecoveryFloor:            1000,

		ActiveDays:              30,
		RecentDays:              90,
		LapsedDays:              180,
		GoodPayerRatio:          0.8,
		PartialPayerRatio:       0.5,
		StandardPaymentTermDays: 30,
		EarlyPaymentFactor:      0.8,
		MaxPaymentDelayDays:     365,
		PaymentTolerance:        0.01,

		RecentSalesDays:       30,
		VelocityMonths:        6,
		TopPerformerSales:     50000,
		SolidPerformerSales:   25000,
		AveragePerformerSales: 10000,
		LowConversionRate:     20,
		HighConversionRate:    50,
		SmallDealSize:         1000,
		LowVelocity:           2,
		HighCustomerLoad:      50,
		LowCustomerLoad:       10,

		BenchmarkFactor: 0.9,
		TrendBandPct:    5,

		DefaultTopN: 5,
	}
}
