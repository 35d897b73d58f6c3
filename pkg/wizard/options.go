package wizard

import (
	"io"
	"os"
)

// Option configures the wizard.
type Option func(*Wizard)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithOutput sets where step banners and previews are printed.
func WithOutput(out io.Writer) Option {
	return func(w *Wizard) {
		if out != nil {
			w.out = out
		}
	}
}

// WithFileReader replaces os.ReadFile for image paths.
func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(w *Wizard) {
		if read != nil {
			w.readFile = read
		}
	}
}

func defaultOptions(w *Wizard) {
	w.out = os.Stdout
	w.readFile = os.ReadFile
}
