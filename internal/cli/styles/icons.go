package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe   = "\uf0ac" // browser/web
	IconVersion = "\uf02b" // tag
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconInfo    = "\uf05a" // info
	IconConfig  = "\ue615" // config
	IconSession = "\uf2d2" // window
	IconTab     = "\uf0ce" // table
	IconPane    = "\uf0db" // columns
)
