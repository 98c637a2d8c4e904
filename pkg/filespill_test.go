package pkg

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type outcome struct {
	Checkout string
	Score    *float64
	Err      string
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill creates the file in dir", func(t *testing.T) {
		dir := t.TempDir()

		spill, err := NewFileSpill[int](dir)
		require.NoError(t, err)
		defer spill.Remove()

		require.FileExists(t, spill.Path())
		require.Contains(t, spill.Path(), dir)
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		expected := []int{100, 200, 300}
		for _, v := range expected {
			require.NoError(t, spill.Append(v))
		}

		require.Equal(t, uint64(3), spill.Len())

		var collected []int
		err = spill.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("structs with nil pointers survive the round trip", func(t *testing.T) {
		spill, err := NewFileSpill[outcome](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		score := 0.667
		items := []outcome{
			{Checkout: "/d4j/cli_32_fixed", Score: &score},
			{Checkout: "/d4j/lang_1_fixed", Err: "missing artifact"},
		}

		for _, item := range items {
			require.NoError(t, spill.Append(item))
		}

		var collected []outcome
		require.NoError(t, spill.Range(func(_ uint64, item outcome) error {
			collected = append(collected, item)
			return nil
		}))

		require.Equal(t, items, collected)
		require.Nil(t, collected[1].Score)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		for i := 0; i < 3; i++ {
			require.NoError(t, spill.Append(i))
		}

		count := 0
		rangeErr := spill.Range(func(index uint64, _ int) error {
			count++
			if index == 1 {
				return errors.New("stop at index 1")
			}
			return nil
		})

		require.Error(t, rangeErr)
		require.Equal(t, 2, count)
	})

	t.Run("Close keeps items readable and rejects appends", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		require.Error(t, spill.Append(2))

		var collected []int
		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		}))
		require.Equal(t, []int{1}, collected)
	})

	t.Run("Remove deletes the backing file", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)

		require.NoError(t, spill.Remove())

		_, err = os.Stat(spill.Path())
		require.True(t, os.IsNotExist(err))
	})

	t.Run("concurrent appends are all recorded", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Remove()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = spill.Append(i)
			}()
		}
		wg.Wait()

		seen := make(map[int]bool)
		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			seen[item] = true
			return nil
		}))
		require.Len(t, seen, 50)
	})
}

func TestFileSpill_EmptyRange(t *testing.T) {
	spill, err := NewFileSpill[int](t.TempDir())
	require.NoError(t, err)
	defer spill.Remove()

	count := 0
	require.NoError(t, spill.Range(func(_ uint64, _ int) error {
		count++
		return nil
	}))
	require.Zero(t, count)
}

func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[int](b.TempDir())
	require.NoError(b, err)
	defer spill.Remove()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spill.Append(i)
	}
}
