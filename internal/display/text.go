package display

// TextFormatter prints one path per line, optionally colored by entry
// kind and annotated with type metadata when WithFileTypes results are
// in play.
type TextFormatter struct {
	styles   Styles
	useColor bool
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles, useColor bool) *TextFormatter {
	return &TextFormatter{styles: styles, useColor: useColor}
}

func (f *TextFormatter) Format(buf []byte, e Entry) []byte {
	text := e.Path
	if !f.useColor {
		buf = append(buf, text...)
		if e.WithFileTypes {
			buf = append(buf, typeSuffix(e)...)
		}
		return append(buf, '\n')
	}

	style := f.styles.File
	switch {
	case e.IsSymlink:
		style = f.styles.Symlink
	case e.IsDir:
		style = f.styles.Dir
	}
	buf = append(buf, style.Render(text)...)
	if e.WithFileTypes {
		buf = append(buf, typeSuffix(e)...)
	}
	return append(buf, '\n')
}

func typeSuffix(e Entry) string {
	switch {
	case e.IsSymlink:
		return " [symlink]"
	case e.IsDir:
		return " [dir]"
	default:
		return ""
	}
}

var _ Formatter = (*TextFormatter)(nil)
