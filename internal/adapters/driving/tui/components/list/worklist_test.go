package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/litarchive/internal/core/domain"
)

func sampleWorks() []domain.Work {
	return []domain.Work{
		{ID: "a", Author: domain.Author{Name: "Ivan Vazov"}, Analysis: domain.Analysis{Name: "Under the Yoke", Year: domain.YearOf("1894")}},
		{ID: "b", Author: domain.Author{Name: "Aleko Konstantinov"}, Analysis: domain.Analysis{Name: "Bay Ganyo"}},
		{ID: "c", Author: domain.Author{Name: "Elin Pelin"}, Analysis: domain.Analysis{Name: "Geracite"}},
	}
}

func TestNewWorkList(t *testing.T) {
	l := NewWorkList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedWork())
}

func TestWorkList_View_Empty(t *testing.T) {
	l := NewWorkList(nil)

	assert.Contains(t, l.View(), EmptyMessage)
}

func TestWorkList_View_Works(t *testing.T) {
	l := NewWorkList(nil)
	l.SetDimensions(80, 20)
	l.SetWorks(sampleWorks())

	view := l.View()

	assert.Contains(t, view, "Works (3)")
	assert.Contains(t, view, "> Under the Yoke")
	assert.Contains(t, view, "Ivan Vazov · 1894")
	assert.Contains(t, view, "Aleko Konstantinov")
	assert.NotContains(t, view, "Aleko Konstantinov ·")
}

func TestWorkList_View_CountOfTotal(t *testing.T) {
	l := NewWorkList(nil)
	l.SetWorks(sampleWorks()[:1])
	l.SetTotal(3)

	assert.Contains(t, l.View(), "Works (1 of 3)")
}

func TestWorkList_View_KeepsOrder(t *testing.T) {
	l := NewWorkList(nil)
	l.SetDimensions(80, 20)
	l.SetWorks(sampleWorks())

	view := l.View()

	yoke := strings.Index(view, "Under the Yoke")
	ganyo := strings.Index(view, "Bay Ganyo")
	geracite := strings.Index(view, "Geracite")
	assert.Less(t, yoke, ganyo)
	assert.Less(t, ganyo, geracite)
}

func TestWorkList_View_TruncatesWideTitles(t *testing.T) {
	l := NewWorkList(nil)
	l.SetDimensions(20, 20)
	l.SetWorks([]domain.Work{{
		ID:       "x",
		Author:   domain.Author{Name: "Иван Вазов"},
		Analysis: domain.Analysis{Name: "Под игото: роман из живота на българите в навечерието на освобождението"},
	}})

	view := l.View()

	assert.Contains(t, view, "...")
	assert.NotContains(t, view, "освобождението")
}

func TestWorkList_Navigation(t *testing.T) {
	l := NewWorkList(nil)
	l.SetWorks(sampleWorks())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.Move(-10)
	assert.Equal(t, 0, l.Selected())
}

func TestWorkList_Update_ArrowsOnly(t *testing.T) {
	l := NewWorkList(nil)
	l.SetWorks(sampleWorks())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, l.Selected(), "letters belong to the filter")

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Selected())
}

func TestWorkList_SetWorks_KeepsSelectedWork(t *testing.T) {
	l := NewWorkList(nil)
	works := sampleWorks()
	l.SetWorks(works)
	l.SetSelected(1)

	l.SetWorks([]domain.Work{works[1], works[2]})
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, "b", l.SelectedWork().ID)

	l.SetWorks([]domain.Work{works[2]})
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, "c", l.SelectedWork().ID)
}

func TestWorkList_SetSelected_OutOfBounds(t *testing.T) {
	l := NewWorkList(nil)
	l.SetWorks(sampleWorks())

	l.SetSelected(10)
	assert.Equal(t, 0, l.Selected())
	l.SetSelected(-1)
	assert.Equal(t, 0, l.Selected())
}

func TestWorkList_Count(t *testing.T) {
	l := NewWorkList(nil)
	l.SetWorks(sampleWorks())

	assert.Equal(t, 3, l.Count())
	assert.Len(t, l.Works(), 3)
	assert.False(t, l.IsEmpty())
}
