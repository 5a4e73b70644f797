package taxonomy

const (
	Discover = "discover"
	Prims    = "prims"
	Scan     = "scan"
	Serve    = "serve"

	UDS = "uds"
	XCP = "xcp"
)

var udsHelp = "Universal Diagnostic Services"

// Default returns the built-in category table.
func Default() *Taxonomy {
	return MustNew(
		Category{
			Name: Discover,
			Help: "find hosts and endpoints",
			Subcategories: []Subcategory{
				{Name: UDS, Help: udsHelp},
				{Name: XCP, Help: "Universal Measurement and Calibration Protocol"},
			},
		},
		Category{
			Name:          Prims,
			Help:          "various primitives for network protocols",
			Subcategories: []Subcategory{{Name: UDS, Help: udsHelp}},
		},
		Category{
			Name:          Scan,
			Help:          "scan parameters of various network protocols",
			Subcategories: []Subcategory{{Name: UDS, Help: udsHelp}},
		},
		Category{
			Name: Serve,
			Help: "utilities to spawn services",
		},
	)
}
