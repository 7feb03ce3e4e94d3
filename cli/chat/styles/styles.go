package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	MinTextareaHeight    = 3
	MaxTextareaHeight    = 20
	DefaultTextareaWidth = 80
	TextAreaPaddingLeft  = 1

	// Viewport
	MinViewportHeight = 1

	// Layout
	InputBorderHeight  = 2
	HeaderHeight       = 2
	MessagePaddingLeft = 2

	// Sidebar
	SidebarWidth       = 32
	SidebarFrameWidth  = 2
	SidebarIndent      = 2
	MaxSidebarTitleLen = 26

	// Truncation
	TruncateSuffix       = "..."
	TruncateSuffixLength = 3
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SecondaryColor = lipgloss.Color("#06B6D4") // Cyan
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	SuccessColor   = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	MutedColor     = lipgloss.Color("#6B7280") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	MessageColor   = lipgloss.Color("#E5E7EB")
	DividerColor   = lipgloss.Color("#374151")
	CodeBgColor    = lipgloss.Color("#374151")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Background(PrimaryColor)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(PrimaryColor).
				MarginLeft(10)

	AIMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(SecondaryColor).
			MarginRight(10)

	SelectedMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(SuccessColor)

	MessageErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Italic(true).
				PaddingLeft(MessagePaddingLeft)
)

// Reply quoting
var (
	ReplyStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Italic(true)

	DimTextStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)
)

// Sidebar
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(DividerColor).
			PaddingLeft(1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Bold(true)

	GroupStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	SessionStyle = lipgloss.NewStyle().
			Foreground(MessageColor)

	ActiveSessionStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	CursorRowStyle = lipgloss.NewStyle().
			Background(CodeBgColor)

	DraggedRowStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Italic(true)

	DropIndicatorStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// System message
var (
	SystemStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)
)

// Error
var (
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
)

// Input area
var (
	TextAreaStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		PaddingLeft(TextAreaPaddingLeft)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)
)

// Confirmation dialog
var (
	ConfirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(1, 2).
			MarginTop(1)

	ConfirmTitleStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ConfirmTargetStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(CodeBgColor)
)

// Viewport
var (
	ViewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)

// MessageHorizontalFrameSize returns the horizontal frame size of AI messages.
func MessageHorizontalFrameSize() int {
	return AIMessageStyle.GetHorizontalFrameSize()
}

// Truncate truncates a string to the specified length with a suffix.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-TruncateSuffixLength] + TruncateSuffix
}
