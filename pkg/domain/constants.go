package domain

// Project defaults applied to fresh projects and to documents missing the fields.
const (
	DefaultProjectName = "My App"
	DefaultTheme       = "light"
	DefaultDeviceFrame = "desktop"
	RootNodeID         = "root"
)

// Themes understood by the code generator.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
