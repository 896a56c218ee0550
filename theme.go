package livellm

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// output automatically matches any color scheme.
type Theme struct {
	Accent   int // Headings, links, widget accents
	Muted    int // Skeleton placeholders, cursor, status text
	Error    int // Fallback blocks, error tones
	Success  int // Success tones
	Warning  int // Warning tones
	Skeleton int // Skeleton placeholder fill
	CodeBg   int // Code block background
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent:   5,
		Muted:    8,
		Error:    1,
		Success:  2,
		Warning:  3,
		Skeleton: 8,
		CodeBg:   0,
	}
}
