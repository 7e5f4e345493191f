package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/eiannone/keyboard"
)

type MenuItem struct {
	Label string
	Value string
}

type Menu struct {
	Title    string
	Items    []MenuItem
	Selected int
	Width    int
}

func NewMenu(title string, items []MenuItem) *Menu {
	return &Menu{
		Title:    title,
		Items:    items,
		Selected: 0,
		Width:    60,
	}
}

func (m *Menu) clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}

// centerText pads text to fit the menu box. Counting runes rather than
// bytes keeps the borders aligned when a label carries the ► marker.
func (m *Menu) centerText(text string, width int) string {
	runes := []rune(text)
	if len(runes) >= width-4 {
		return string(runes[:width-4])
	}
	padding := (width - len(runes) - 4) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(runes)-padding-4)
}

func (m *Menu) render() {
	m.clearScreen()

	// ASCII Art Title
	fmt.Print(`
██████╗ ██╗      ██████╗  ██████╗██╗  ██╗██████╗ ██████╗  ██████╗ ██████╗
██╔══██╗██║     ██╔═══██╗██╔════╝██║ ██╔╝██╔══██╗██╔══██╗██╔═══██╗██╔══██╗
██████╔╝██║     ██║   ██║██║     █████╔╝ ██║  ██║██████╔╝██║   ██║██████╔╝
██╔══██╗██║     ██║   ██║██║     ██╔═██╗ ██║  ██║██╔══██╗██║   ██║██╔═══╝
██████╔╝███████╗╚██████╔╝╚██████╗██║  ██╗██████╔╝██║  ██║╚██████╔╝██║
╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝
`)
	fmt.Println()

	fmt.Println(m.centerText("Fill rows. Fill columns. Clear the board.", m.Width))
	fmt.Println()

	inner := strings.Repeat("═", m.Width-2)
	fmt.Println("╔" + inner + "╗")
	fmt.Printf("║%s║\n", m.centerText(m.Title, m.Width))
	fmt.Println("╠" + inner + "╣")

	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "► "
		}

		paddedText := m.centerText(prefix+item.Label, m.Width)
		if i == m.Selected {
			fmt.Printf("║\033[7m%s\033[0m║\n", paddedText) // Highlighted
		} else {
			fmt.Printf("║%s║\n", paddedText)
		}
	}

	fmt.Println("╚" + inner + "╝")

	fmt.Println()
	fmt.Println("↑/↓ move, Enter select, Esc or 'q' back")
}

func (m *Menu) moveUp() {
	if m.Selected > 0 {
		m.Selected--
	} else {
		m.Selected = len(m.Items) - 1 // Wrap to bottom
	}
}

func (m *Menu) moveDown() {
	if m.Selected < len(m.Items)-1 {
		m.Selected++
	} else {
		m.Selected = 0 // Wrap to top
	}
}

func (m *Menu) Show() string {
	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		return ""
	}
	defer keyboard.Close()

	for {
		m.render()

		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Printf("Error reading key: %v\n", err)
			return ""
		}

		switch key {
		case keyboard.KeyArrowUp:
			m.moveUp()
		case keyboard.KeyArrowDown:
			m.moveDown()
		case keyboard.KeyEnter:
			return m.Items[m.Selected].Value
		case keyboard.KeyEsc:
			return "exit"
		}

		if char == 'q' || char == 'Q' {
			return "exit"
		}
	}
}
