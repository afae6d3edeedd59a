package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/ledger"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/home"
	"github.com/abhisek/tango/internal/screens/library"
)

func testModel() AppModel {
	return newAppModel(home.Deps{
		Cards: cards.NewMemoryStore(
			cards.Card{ID: "1", Term: "ねこ", Meaning: "cat"},
			cards.Card{ID: "2", Term: "いぬ", Meaning: "dog"},
		),
		Ledger: ledger.New(ledger.NewMemoryKV()),
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return am, cmd
}

func TestApp_HeaderShowsSummary(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, m.loadSummary()())

	if m.summary.Cards != 2 {
		t.Errorf("summary = %+v", m.summary)
	}
	content := m.render()
	if !strings.Contains(content, "2 cards") || !strings.Contains(content, "0 learned") {
		t.Error("expected summary in header")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestApp_EscPopsToHome(t *testing.T) {
	m := testModel()

	// Esc at the root does nothing.
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at root should be a no-op")
	}

	m, _ = update(t, m, router.Push(library.New(m.deps.Cards))())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m, resume := update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if resume == nil {
		t.Error("expected home to reload when resumed")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	_, cmd := update(t, testModel(), tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_CollectionChangeReloadsSummary(t *testing.T) {
	_, cmd := update(t, testModel(), screen.CollectionChangedMsg{})
	if cmd == nil {
		t.Error("expected summary reload")
	}
}
