// Package notify delivers the download pipeline's user-facing outcome
// messages. The pipeline never renders UI itself; it only picks a category.
package notify

import (
	"fmt"
	"os"
)

// Category is one of the pre-defined messages shown for a download outcome.
// Exactly one is delivered per terminal attempt.
type Category int

const (
	NoConnectivity Category = iota
	DownloadError
	DownloadCancelled
	DownloadComplete
)

func (c Category) String() string {
	switch c {
	case NoConnectivity:
		return "No internet connection. Try again when you are back online."
	case DownloadError:
		return "Language download failed. Please try again later."
	case DownloadCancelled:
		return "Language download cancelled."
	case DownloadComplete:
		return "Language downloaded."
	}
	return "unknown"
}

// Notifier shows one message to the user.
type Notifier interface {
	Notify(c Category)
}

// Stderr writes the message to standard error, the CLI's stand-in for the
// app's alert dialog.
type Stderr struct{}

func (Stderr) Notify(c Category) {
	fmt.Fprintln(os.Stderr, c.String())
}

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(Category) {}
