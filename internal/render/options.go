package render

// WhitespacePolicy selects how whitespace inside changed spans is
// highlighted. The policies are mutually exclusive and ignored in
// highlight mode.
type WhitespacePolicy int

const (
	// WhitespaceDefault renders a change consisting entirely of
	// whitespace once in the background variant: visible but subdued.
	WhitespaceDefault WhitespacePolicy = iota
	// WhitespaceShowAll gives every whitespace character inside a
	// colored span its own background wrapper.
	WhitespaceShowAll
	// WhitespaceShowNone leaves pure-whitespace changes uncolored.
	WhitespaceShowNone
)

// Options configure one table-rendering run. They are resolved and
// validated before the first row; the core consults nothing else, no
// environment and no globals.
type Options struct {
	Cols       int // total table width; 80 when unset
	TabSize    int // tab stop spacing; 8 when unset
	WrapColumn int // per-side wrap width; derived from Cols when unset

	LineNumbers bool
	Highlight   bool
	NoBold      bool // only consulted when Colors is unresolved
	Whitespace  WhitespacePolicy
	Truncate    bool
	StripCR     bool

	// Colors is the resolved category -> color table. The zero value
	// resolves to the defaults.
	Colors ColorMap

	// Table furniture supplied by the caller.
	FromDesc, ToDesc string
	FromPerm, ToPerm string

	// Oracle configuration, passed through to the aligner.
	Context      bool
	ContextLines int
	LineJunk     func(string) bool
}

// config is the frozen form of Options the pipeline runs on.
type config struct {
	Options
	wrap int // wrap column for one side
	pad  int // display width each cell is padded to
}

func (o Options) resolve() (config, error) {
	cfg := config{Options: o}

	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = 8
	}
	if !cfg.Colors.resolved() {
		colors, err := ResolveColors(nil, o.NoBold)
		if err != nil {
			return config{}, err
		}
		cfg.Colors = colors
	}

	// The line-number gutter is 9 columns, so with numbers on, gutter
	// plus wrap column land exactly on the cell width.
	cfg.wrap = o.WrapColumn
	if cfg.wrap <= 0 {
		if o.LineNumbers {
			cfg.wrap = cfg.Cols/2 - 10
		} else {
			cfg.wrap = cfg.Cols/2 - 2
		}
	}
	if o.LineNumbers {
		cfg.pad = cfg.Cols/2 - 1
	} else {
		cfg.pad = cfg.Cols/2 - 2
	}

	return cfg, nil
}
