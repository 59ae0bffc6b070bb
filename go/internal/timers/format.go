package timers

import "fmt"

// FormatStore renders seconds as M:SS, minutes unpadded.
func FormatStore(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatCheckout renders seconds as MM:SS.
func FormatCheckout(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
