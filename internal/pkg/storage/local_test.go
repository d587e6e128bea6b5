package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Save(ctx, strings.NewReader("net,880.00\n"), "2024-05/payslips/e1.csv")
	require.NoError(t, err)
	assert.Equal(t, "2024-05/payslips/e1.csv", path)

	body, err := os.ReadFile(filepath.Join(dir, "2024-05", "payslips", "e1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "net,880.00\n", string(body))

	// a second save replaces the file
	_, err = store.Save(ctx, strings.NewReader("net,900.00\n"), path)
	require.NoError(t, err)
	body, err = os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "net,900.00\n", string(body))
}

func TestLocalStorage_SaveCancelled(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, strings.NewReader("x"), "a.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_StaysInsideBase(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	// traversal is folded back under the base directory
	path, err := store.Save(context.Background(), strings.NewReader("x"), "../../etc/payroll.csv")
	require.NoError(t, err)
	assert.Equal(t, "etc/payroll.csv", path)

	_, err = store.Save(context.Background(), strings.NewReader("x"), "/")
	assert.True(t, errors.Is(err, ErrInvalidPath))
}
