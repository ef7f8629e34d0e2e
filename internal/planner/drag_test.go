package planner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

func TestDraggerLifecycle(t *testing.T) {
	fake := newFakeBackend()
	p := New(fake)
	a := domain.Assignment{ID: "a1", Date: "2025-03-10", StartTime: "09:00", EndTime: "13:00"}
	p.assignments = []domain.Assignment{a}
	fake.stored["a1"] = a

	d := NewDragger(p)

	_, dragging := d.Dragging(fitter.ID)
	assert.False(t, dragging)

	d.Start(fitter.ID, a)
	got, dragging := d.Dragging(fitter.ID)
	require.True(t, dragging)
	assert.Equal(t, "a1", got.ID)

	moved, err := d.Drop(context.Background(), fitter.ID, "2025-03-12")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "2025-03-12", moved.Date)
	assert.Equal(t, "09:00", moved.StartTime)

	_, dragging = d.Dragging(fitter.ID)
	assert.False(t, dragging, "a drop ends the drag")
}

func TestDraggerDropWithNothingDragged(t *testing.T) {
	fake := newFakeBackend()
	d := NewDragger(New(fake))

	moved, err := d.Drop(context.Background(), fitter.ID, "2025-03-12")
	assert.NoError(t, err)
	assert.Nil(t, moved)
	assert.Zero(t, fake.updateCalls)
}

func TestDraggerCancelKeepsDateUnchanged(t *testing.T) {
	fake := newFakeBackend()
	p := New(fake)
	a := domain.Assignment{ID: "a1", Date: "2025-03-10"}
	p.assignments = []domain.Assignment{a}

	d := NewDragger(p)
	d.Start(fitter.ID, a)
	d.Cancel(fitter.ID)

	_, dragging := d.Dragging(fitter.ID)
	assert.False(t, dragging)
	assert.Equal(t, "2025-03-10", p.Assignments()[0].Date)
	assert.Zero(t, fake.updateCalls)
}

func TestDraggerFailedDropClearsStateAndRollsBack(t *testing.T) {
	fake := newFakeBackend()
	fake.updateErr = errors.New("backend unreachable")
	p := New(fake)
	a := domain.Assignment{ID: "a1", Date: "2025-03-10"}
	p.assignments = []domain.Assignment{a}

	d := NewDragger(p)
	d.Start(fitter.ID, a)

	_, err := d.Drop(context.Background(), fitter.ID, "2025-03-12")
	require.Error(t, err)

	_, dragging := d.Dragging(fitter.ID)
	assert.False(t, dragging, "a failed drop must not leave a stuck drag")
	assert.Equal(t, "2025-03-10", p.Assignments()[0].Date)
}

func TestDraggerStartReplacesExistingDrag(t *testing.T) {
	d := NewDragger(New(newFakeBackend()))

	d.Start(fitter.ID, domain.Assignment{ID: "a1"})
	d.Start(fitter.ID, domain.Assignment{ID: "a2"})

	got, dragging := d.Dragging(fitter.ID)
	require.True(t, dragging)
	assert.Equal(t, "a2", got.ID)
}

func TestDraggerScopesDragsPerViewer(t *testing.T) {
	fake := newFakeBackend()
	p := New(fake)
	a1 := domain.Assignment{ID: "a1", Date: "2025-03-10"}
	a2 := domain.Assignment{ID: "a2", Date: "2025-03-11"}
	p.assignments = []domain.Assignment{a1, a2}
	fake.stored["a1"] = a1
	fake.stored["a2"] = a2

	d := NewDragger(p)
	d.Start(fitter.ID, a1)

	// another viewer's drop cannot commit the fitter's drag
	moved, err := d.Drop(context.Background(), manager.ID, "2025-03-14")
	require.NoError(t, err)
	assert.Nil(t, moved)
	assert.Zero(t, fake.updateCalls)

	_, dragging := d.Dragging(fitter.ID)
	assert.True(t, dragging, "the fitter's drag survives the other viewer's drop")

	// each viewer's drag commits independently
	d.Start(manager.ID, a2)

	moved, err = d.Drop(context.Background(), manager.ID, "2025-03-14")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "a2", moved.ID)

	moved, err = d.Drop(context.Background(), fitter.ID, "2025-03-13")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "a1", moved.ID)
	assert.Equal(t, "2025-03-13", moved.Date)

	// the other viewer's cancel is equally scoped
	d.Start(fitter.ID, a1)
	d.Cancel(manager.ID)
	_, dragging = d.Dragging(fitter.ID)
	assert.True(t, dragging)
}

func TestDraggerConcurrentViewers(t *testing.T) {
	fake := newFakeBackend()
	p := New(fake)
	a := domain.Assignment{ID: "a1", Date: "2025-03-10"}
	p.assignments = []domain.Assignment{a}

	d := NewDragger(p)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		viewerID := int64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Start(viewerID, a)
			_, dragging := d.Dragging(viewerID)
			assert.True(t, dragging)
			d.Cancel(viewerID)
		}()
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		_, dragging := d.Dragging(int64(i))
		assert.False(t, dragging)
	}
}
