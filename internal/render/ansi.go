package render

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Art dimensions in character cells
const (
	artWidth  = 24
	artHeight = 20
)

// cachedAnsiArt returns ANSI art for an image file, generating and caching
// it under cacheDir on first use
func cachedAnsiArt(imagePath, cacheDir string) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", err
	}

	if cacheDir == "" {
		return generateAnsiArt(imagePath)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	// Cache key covers the path and the modification time so edited images regenerate
	key := fmt.Sprintf("%s|%d|%dx%d", imagePath, info.ModTime().UnixNano(), artWidth, artHeight)
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	art, err := generateAnsiArt(imagePath)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}
	return art, nil
}

// generateAnsiArt converts an image file to ANSI art
func generateAnsiArt(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return imageToAnsi(img, artWidth, artHeight), nil
}

// imageToAnsi converts an image to ANSI art, two pixel rows per line
func imageToAnsi(img image.Image, width, height int) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			c1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			c2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			c3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			c4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := averageColor(c1, c2)
			bg := averageColor(c3, c4)

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return strings.TrimSuffix(buffer.String(), "\n")
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with 24-bit foreground and background colors
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// visibleWidth approximates the number of terminal cells a line occupies
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var currentLine string
	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}
	return result
}
