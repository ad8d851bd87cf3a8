// Command gateway-mode reports whether the configured payment gateway keys target the test or live environment.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cedrichouse/houseplans-api/internal/clients/http/yoco"
)

func main() {
	_ = godotenv.Load()
	os.Exit(report(os.Stdout, os.Getenv("YOCO_SECRET_KEY"), os.Getenv("YOCO_PUBLIC_KEY")))
}

// report writes the mode summary and returns the process exit code.
func report(w io.Writer, secretKey, publicKey string) int {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PAYMENT GATEWAY MODE CHECK")
	fmt.Fprintln(w, rule)

	if strings.TrimSpace(secretKey) == "" || strings.TrimSpace(publicKey) == "" {
		fmt.Fprintln(w, "ERROR: YOCO_SECRET_KEY and YOCO_PUBLIC_KEY must both be set")
		return 1
	}
	fmt.Fprintf(w, "Secret key: %s\n", yoco.MaskKey(secretKey))
	fmt.Fprintf(w, "Public key: %s\n", yoco.MaskKey(publicKey))
	fmt.Fprintln(w, rule)

	switch yoco.DetectMode(secretKey, publicKey) {
	case yoco.ModeTest:
		fmt.Fprintln(w, "MODE: TEST")
		fmt.Fprintln(w, "No real money will be charged; use gateway test cards.")
		return 0
	case yoco.ModeLive:
		fmt.Fprintln(w, "MODE: LIVE")
		fmt.Fprintln(w, "WARNING: real cards will be charged.")
		return 0
	default:
		fmt.Fprintln(w, "MODE: MIXED/INVALID")
		fmt.Fprintf(w, "Secret key is %s\n", describe(yoco.KeyMode(secretKey)))
		fmt.Fprintf(w, "Public key is %s\n", describe(yoco.KeyMode(publicKey)))
		fmt.Fprintln(w, "Both keys must target the same environment.")
		return 1
	}
}

func describe(mode yoco.Mode) string {
	if mode == yoco.ModeUnknown {
		return "in an invalid format"
	}
	return string(mode)
}
