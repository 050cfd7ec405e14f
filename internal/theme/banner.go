package theme

import (
	"fmt"
)

// Banner returns a siren-striped patrol banner.
func Banner() string {
	// ANSI colors for the flashing-lights feel
	const red = "\033[31m"
	const blue = "\033[34m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		"  🚨   " + red + "RATIO" + reset + blue + "COP" + reset + "   🚨\n" +
		blue + "   ▄████▄  ▄████▄  ▄████▄\n" + reset +
		red + "  ▐██◉▒██▌▐██▒◉██▌▐██◉▒██▌\n" + reset +
		blue + "   ▀████▀  ▀████▀  ▀████▀\n" + reset +
		yellow + "   ─────────────────────────\n" + reset +
		"   follow-ratio enforcement, zero jurisdiction\n"

	tape := yellow + "   ░ DO NOT CROSS ░ DO NOT CROSS ░\n" + reset
	return art + tape
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
