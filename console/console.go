// Package console reports progress and problems on a terminal.
package console

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/mgmeyers/pdfsplit/pdfutils"
	"github.com/mgmeyers/pdfsplit/splitter"
)

// Console writes human readable messages to a stream, normally stderr.
// Progress bars are only drawn when the stream is a terminal.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	log   *logrus.Logger
	bar   *progressbar.ProgressBar
	green *color.Color
	red   *color.Color
	quiet bool
	tty   bool
}

// New returns a Console writing to out. Colours are used if out is a
// terminal and noColor is false.
func New(out io.Writer, quiet, noColor bool) *Console {
	tty := isTerminal(out)
	useColor := tty && !noColor

	c := &Console{
		out:   out,
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
		quiet: quiet,
		tty:   tty,
	}
	for _, clr := range []*color.Color{c.green, c.red} {
		if useColor {
			clr.EnableColor()
		} else {
			clr.DisableColor()
		}
	}

	c.log = logrus.New()
	c.log.Out = out
	c.log.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !useColor,
		ForceColors:      useColor,
	}
	if quiet {
		c.log.SetLevel(logrus.ErrorLevel)
	}

	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Progress advances the "Processing pages" bar to done out of total.
func (c *Console) Progress(done, total int) {
	if c.quiet || !c.tty || total <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar == nil {
		c.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(c.out),
			progressbar.OptionSetDescription("Processing pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionOnCompletion(func() {
				io.WriteString(c.out, "\n")
			}),
		)
	}
	c.bar.Set(done)
	if done >= total {
		c.bar = nil
	}
}

// Warn logs a recoverable problem. Warnings are dropped in quiet mode.
func (c *Console) Warn(err error) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()

	entry := logrus.NewEntry(c.log)

	var annotErr *splitter.AnnotationError
	var pageWarn *pdfutils.PageWarning
	switch {
	case errors.As(err, &annotErr):
		entry = entry.WithFields(logrus.Fields{
			"page":       annotErr.Page,
			"annotation": annotErr.Index + 1,
			"half":       annotErr.Side.String(),
		})
		entry.Warnf("Could not process annotation on page %d: %v", annotErr.Page, annotErr.Err)
	case errors.As(err, &pageWarn):
		entry.WithField("page", pageWarn.Page).Warn(pageWarn.Msg)
	default:
		entry.Warn(err)
	}
}

// Info prints an informational line, suppressed in quiet mode.
func (c *Console) Info(msg string) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()
	c.log.Info(msg)
}

// Success prints msg in green. It is shown even in quiet mode.
func (c *Console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()
	c.green.Fprintln(c.out, msg)
}

// Error prints err in red. Errors are shown even in quiet mode.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBar()
	c.red.Fprintln(c.out, "Error: "+err.Error())
}

// clearBar wipes an unfinished progress bar so that the next message starts
// on a clean line. The bar is redrawn on the next Progress call.
func (c *Console) clearBar() {
	if c.bar != nil {
		c.bar.Clear()
	}
}
