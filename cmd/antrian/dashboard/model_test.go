// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/testutil"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// newTestModel builds a model over a seeded fixture: one admin, one
// patient, two tickets (Poli Umum and Poli Gigi).
func newTestModel(t *testing.T) (Model, *testutil.Fixture) {
	t.Helper()

	fixture := testutil.NewFixture(t)
	admin := fixture.SeedAdmin(t)
	patient := fixture.RegisterPatient(t, "3101", "budi")
	fixture.CreateTicket(t, patient, "Poli Umum", "Demam")
	fixture.CreateTicket(t, patient, "Poli Gigi", "Sakit gigi")

	model := NewModel(Config{
		Session:      admin,
		Service:      fixture.Service,
		Clock:        fixture.Clock,
		RefreshEvery: 5 * time.Second,
	})
	return model, fixture
}

func reload(t *testing.T, model Model) Model {
	t.Helper()

	msg := model.reload()()
	loaded, ok := msg.(reloadedMsg)
	if !ok {
		t.Fatalf("reload produced %T, want reloadedMsg", msg)
	}
	if loaded.err != nil {
		t.Fatalf("reload error: %v", loaded.err)
	}
	updated, _ := model.Update(loaded)
	return updated.(Model)
}

func TestReloadPopulatesTickets(t *testing.T) {
	model, _ := newTestModel(t)

	model = reload(t, model)
	if len(model.tickets) != 2 {
		t.Fatalf("loaded %d tickets, want 2", len(model.tickets))
	}
	if model.lastRefresh.IsZero() {
		t.Error("lastRefresh not set")
	}
}

func TestReloadPromotesAgedTickets(t *testing.T) {
	model, fixture := newTestModel(t)

	fixture.Clock.Advance(61 * time.Second)
	model = reload(t, model)

	for _, ticket := range model.tickets {
		if ticket.Status != record.StatusInProgress {
			t.Errorf("ticket %d status = %q, want %q", ticket.ID, ticket.Status, record.StatusInProgress)
		}
	}
}

func TestPatientSeesOnlyOwnTickets(t *testing.T) {
	fixture := testutil.NewFixture(t)
	first := fixture.RegisterPatient(t, "3101", "budi")
	second := fixture.RegisterPatient(t, "3102", "siti")
	fixture.CreateTicket(t, first, "Poli Umum", "Demam")
	fixture.CreateTicket(t, second, "Poli Gigi", "Sakit gigi")

	model := NewModel(Config{
		Session: first,
		Service: fixture.Service,
		Clock:   fixture.Clock,
	})
	model = reload(t, model)

	if len(model.tickets) != 1 {
		t.Fatalf("patient sees %d tickets, want 1", len(model.tickets))
	}
	if model.tickets[0].PatientNIK != "3101" {
		t.Errorf("patient sees ticket for NIK %s", model.tickets[0].PatientNIK)
	}
}

func TestFilterCycling(t *testing.T) {
	model, _ := newTestModel(t)
	model = reload(t, model)

	// Cycle to "Baru": both tickets still match.
	updated, _ := model.Update(keyPress('f'))
	model = updated.(Model)
	if got := len(model.visible()); got != 2 {
		t.Fatalf("Baru filter shows %d tickets, want 2", got)
	}

	// Cycle to "Sedang Berlangsung": none match yet.
	updated, _ = model.Update(keyPress('f'))
	model = updated.(Model)
	if got := len(model.visible()); got != 0 {
		t.Fatalf("in-progress filter shows %d tickets, want 0", got)
	}
	if model.cursor != 0 {
		t.Errorf("cursor = %d after filter emptied the view", model.cursor)
	}
}

func TestCursorMovementAndClamping(t *testing.T) {
	model, _ := newTestModel(t)
	model = reload(t, model)

	updated, _ := model.Update(keyPress('j'))
	model = updated.(Model)
	if model.cursor != 1 {
		t.Fatalf("cursor = %d after down, want 1", model.cursor)
	}

	// Down at the bottom stays put.
	updated, _ = model.Update(keyPress('j'))
	model = updated.(Model)
	if model.cursor != 1 {
		t.Fatalf("cursor = %d at bottom, want 1", model.cursor)
	}

	updated, _ = model.Update(keyPress('k'))
	model = updated.(Model)
	if model.cursor != 0 {
		t.Fatalf("cursor = %d after up, want 0", model.cursor)
	}
}

func TestRefreshTickSchedulesReload(t *testing.T) {
	model, _ := newTestModel(t)

	_, cmd := model.Update(refreshTickMsg{})
	if cmd == nil {
		t.Fatal("refresh tick produced no command")
	}
}

func TestViewRendersTicketsAndHelp(t *testing.T) {
	model, _ := newTestModel(t)
	model = reload(t, model)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model = updated.(Model)

	view := model.View()
	for _, want := range []string{"budi", "Poli Umum", "Baru", "filter: semua", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Detail pane appears on toggle.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if view := model.View(); !strings.Contains(view, "Keluhan:") {
		t.Error("detail pane not rendered after toggle")
	}
}
