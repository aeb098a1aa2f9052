package dashboard

import (
	"errors"
	"testing"

	"github.com/gabapcia/transferscope/internal/transfer"

	"github.com/stretchr/testify/assert"
)

func loadedTable(n int) TableState {
	var t TableState
	t.load(n)
	return t
}

func TestTableState_Next(t *testing.T) {
	t.Run("should start at the first row and wrap after the last", func(t *testing.T) {
		table := loadedTable(3)

		_, ok := table.Selected()
		assert.False(t, ok)
		assert.Equal(t, 2, table.ScrollRange)

		table.Next()
		selected, ok := table.Selected()
		assert.True(t, ok)
		assert.Equal(t, 0, selected)

		table.Next()
		table.Next()
		table.Next()
		selected, _ = table.Selected()
		assert.Equal(t, 0, selected)
		assert.Equal(t, 0, table.ScrollPosition)
		assert.Equal(t, 2, table.ScrollRange)
	})

	t.Run("should return to the same row after length steps", func(t *testing.T) {
		for n := 1; n <= 5; n++ {
			table := loadedTable(n)
			table.Next()
			for start := range n {
				for table.selected != start {
					table.Next()
				}
				for range n {
					table.Next()
				}
				selected, _ := table.Selected()
				assert.Equal(t, start, selected)
			}
		}
	})

	t.Run("should do nothing on an empty table", func(t *testing.T) {
		table := loadedTable(0)

		table.Next()
		table.Previous()

		_, ok := table.Selected()
		assert.False(t, ok)
		assert.Equal(t, 0, table.ScrollPosition)
		assert.Equal(t, 0, table.ScrollRange)
	})
}

func TestTableState_Previous(t *testing.T) {
	t.Run("should start at the first row and wrap before the first", func(t *testing.T) {
		table := loadedTable(3)

		table.Previous()
		selected, ok := table.Selected()
		assert.True(t, ok)
		assert.Equal(t, 0, selected)

		table.Previous()
		selected, _ = table.Selected()
		assert.Equal(t, 2, selected)
		assert.Equal(t, 2, table.ScrollPosition)
	})

	t.Run("should undo next when there is more than one row", func(t *testing.T) {
		for n := 2; n <= 5; n++ {
			table := loadedTable(n)
			table.Next()
			for range n {
				before, _ := table.Selected()
				table.Next()
				table.Previous()
				after, _ := table.Selected()
				assert.Equal(t, before, after)
				table.Next()
			}
		}
	})
}

func TestState_Load(t *testing.T) {
	t.Run("should clear every table when a load begins", func(t *testing.T) {
		s := NewState()
		s.CompleteLoad([transfer.KindCount]int{3, 1, 0})
		s.ActiveTable().Next()
		s.Err = errors.New("old")

		s.BeginLoad()

		assert.Equal(t, ScreenLoading, s.Screen)
		assert.NoError(t, s.Err)
		for _, table := range s.Tables {
			assert.Equal(t, 0, table.Length)
			_, ok := table.Selected()
			assert.False(t, ok)
		}
	})

	t.Run("should recompute every scroll range on completion", func(t *testing.T) {
		s := NewState()
		s.ActiveTab = transfer.KindERC721

		s.CompleteLoad([transfer.KindCount]int{3, 1, 0})

		assert.Equal(t, ScreenMain, s.Screen)
		assert.Equal(t, transfer.KindNative, s.ActiveTab)
		assert.Equal(t, 2, s.Tables[transfer.KindNative].ScrollRange)
		assert.Equal(t, 0, s.Tables[transfer.KindERC20].ScrollRange)
		assert.Equal(t, 0, s.Tables[transfer.KindERC721].ScrollRange)
		assert.Equal(t, 3, s.Tables[transfer.KindNative].Length)
	})

	t.Run("should return to the query builder with empty tables on failure", func(t *testing.T) {
		s := NewState()
		s.CompleteLoad([transfer.KindCount]int{3, 1, 0})
		s.Editing = true
		failure := errors.New("boom")

		s.FailLoad(failure)

		assert.Equal(t, ScreenQueryBuilder, s.Screen)
		assert.False(t, s.Editing)
		assert.ErrorIs(t, s.Err, failure)
		for _, table := range s.Tables {
			assert.Equal(t, 0, table.Length)
		}
	})
}

func TestScreen_String(t *testing.T) {
	t.Run("should name every screen", func(t *testing.T) {
		assert.Equal(t, "startup", ScreenStartup.String())
		assert.Equal(t, "query-builder", ScreenQueryBuilder.String())
		assert.Equal(t, "loading", ScreenLoading.String())
		assert.Equal(t, "main", ScreenMain.String())
		assert.Equal(t, "exiting", ScreenExiting.String())
		assert.Equal(t, "unknown", Screen(42).String())
	})
}
