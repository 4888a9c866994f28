package numerator

// Strategy selects how numbers are allocated.
type Strategy int

const (
	// StrategyStrict takes every number from the database row, one
	// UPDATE ... RETURNING per document. Gapless, required for
	// invoices and anything else a tax auditor reads.
	StrategyStrict Strategy = iota

	// StrategyCached reserves ranges in memory. Faster, but numbers
	// reserved before a restart are lost. Fine for internal documents.
	StrategyCached
)

// Options control a single allocation.
type Options struct {
	Strategy Strategy

	// RangeSize is how many numbers a cached allocation reserves at
	// once. Defaults to 50.
	RangeSize int64
}

// DefaultOptions returns strict allocation.
func DefaultOptions() *Options {
	return &Options{
		Strategy: StrategyStrict,
	}
}

// Config describes the number format for one document type.
type Config struct {
	// Prefix added to all numbers (e.g. "INV")
	Prefix string

	// IncludeYear puts the period year into the number
	IncludeYear bool

	// PadWidth is the minimum digit width (default 5)
	PadWidth int

	// ResetPeriod restarts the counter: "year", "month" or "never"
	ResetPeriod string
}

// DefaultConfig numbers documents as PREFIX-YEAR-NNNNN with a yearly
// counter reset.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}
