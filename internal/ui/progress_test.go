package ui

import (
	"bytes"
	"strings"
	"testing"
)

func forcedHeadless() *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return hm
}

func TestHeadlessManagerForce(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("IsHeadless() = false after ForceHeadless(true)")
	}

	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("IsHeadless() = true after ForceHeadless(false)")
	}
}

func TestHeadlessSpinnerLogsTitles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := newProgressImpl(DefaultTheme(), forcedHeadless(), &buf)

	sp := p.Spinner("reading configuration")
	sp.SetTitle("merging fields")
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "reading configuration") {
		t.Errorf("output missing initial title: %q", out)
	}
	if !strings.Contains(out, "merging fields") {
		t.Errorf("output missing updated title: %q", out)
	}
}

func TestHeadlessProgressBarCapsAtTotal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := newProgressImpl(DefaultTheme(), forcedHeadless(), &buf)

	bar := p.Start("indexing bundles", 3)
	bar.Increment(2)
	bar.Increment(5)
	bar.Done()

	out := buf.String()
	if !strings.Contains(out, "[2/3] indexing bundles") {
		t.Errorf("output missing first increment: %q", out)
	}
	if !strings.Contains(out, "[3/3] indexing bundles") {
		t.Errorf("output missing capped/final line: %q", out)
	}
	if strings.Contains(out, "[7/3]") {
		t.Errorf("progress exceeded total: %q", out)
	}
}

func TestNoColorThemeSelectsHeadlessComponents(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	theme.NoColor = true

	hm := NewHeadlessManager()
	hm.ForceHeadless(false) // interactive TTY, but color disabled

	var buf bytes.Buffer
	p := newProgressImpl(theme, hm, &buf)

	if _, ok := p.Spinner("x").(*headlessSpinner); !ok {
		t.Error("Spinner() should be headless when NoColor is set")
	}
	if _, ok := p.Start("x", 1).(*headlessProgressBar); !ok {
		t.Error("Start() should be headless when NoColor is set")
	}
}
