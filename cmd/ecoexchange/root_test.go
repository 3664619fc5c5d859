package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/ecoexchange/internal/config"
	"github.com/vbonduro/ecoexchange/internal/service"
)

// executeCommand runs root with args and returns what it wrote to stdout.
// Logs go to a separate buffer so JSON output stays parseable.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return stdout.String(), err
}

// run executes a fresh root command against documents in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	base := []string{
		"--data", filepath.Join(dir, "materials.json"),
		"--transactions", filepath.Join(dir, "demo_data.json"),
		"--photo-path", filepath.Join(dir, "photos"),
	}
	return executeCommand(newRootCmd(), append(args, base...)...)
}

func TestRootCmd(t *testing.T) {
	// Show help
	output, err := executeCommand(newRootCmd())
	assert.NoError(t, err)
	assert.Contains(t, output, "ecoexchange lists, browses and verifies reusable waste materials")

	// Test invalid log level
	_, err = executeCommand(newRootCmd(), "version", "--log-level", "invalid")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid log level: invalid. Valid log levels are: debug|error|info|warn")
}

func TestVersionCmd(t *testing.T) {
	output, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "ecoexchange dev\n", output)
}

func TestSellAndBrowse(t *testing.T) {
	dir := t.TempDir()

	output, err := run(t, dir, "sell", "--title", "Coconut husks", "--category", "Organic Waste", "--price", "4.5", "--quantity", "120")
	require.NoError(t, err)
	assert.Contains(t, output, "Material listed successfully! id=0 vendor_id=0 vendor=Demo Vendor")

	output, err = run(t, dir, "sell", "--title", "Cullet", "--category", "Glass", "--price", "12", "--quantity", "40", "--vendor-name", "Glassworks")
	require.NoError(t, err)
	assert.Contains(t, output, "id=1 vendor_id=1 vendor=Glassworks")

	output, err = run(t, dir, "browse")
	require.NoError(t, err)
	assert.Contains(t, output, "Showing 2 materials")
	assert.Contains(t, output, "#0 Coconut husks [Organic Waste] ₹4.50/kg, 120 kg available, vendor: Demo Vendor (Mumbai)")

	output, err = run(t, dir, "browse", "--category", "Glass", "--min", "10", "--max", "20", "--json")
	require.NoError(t, err)
	var listings []service.Listing
	require.NoError(t, json.Unmarshal([]byte(output), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Cullet", listings[0].Title)
	assert.Equal(t, "Glassworks", listings[0].Vendor.Name)
}

func TestSellRejectsInvalidListing(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "sell", "--title", "Scrap", "--category", "Metals")
	assert.ErrorIs(t, err, service.ErrInvalidListing)

	_, err = run(t, dir, "sell", "--category", "Glass")
	assert.Error(t, err, "title is required")
}

func TestBrowseRejectsUnknownSort(t *testing.T) {
	_, err := run(t, t.TempDir(), "browse", "--sort", "Oldest")
	assert.Error(t, err)
}

func TestImpactCmd(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "sell", "--title", "A", "--category", "Plastics", "--quantity", "5")
	require.NoError(t, err)
	_, err = run(t, dir, "sell", "--title", "B", "--category", "Plastics", "--quantity", "3")
	require.NoError(t, err)

	output, err := run(t, dir, "impact")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Listings: 2")
	assert.Contains(t, output, "Total Quantity (kg): 8")
	assert.Contains(t, output, "Estimated CO2 Saved (kg): 20")
	assert.Contains(t, output, "A - 5 kg available")
}

func TestClassifyCmd(t *testing.T) {
	output, err := run(t, t.TempDir(), "classify", "My_Coconut_Photo.png", "--quantity", "10")
	require.NoError(t, err)
	assert.Equal(t, "Coconut Shell (95%), estimated CO2 saved for 10 kg: 8.20 kg\n", output)

	output, err = run(t, t.TempDir(), "classify", "random.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "Other (75%)"))
}

func TestTransactCmd(t *testing.T) {
	dir := t.TempDir()

	output, err := run(t, dir, "transact", `{"material_id": 0, "buyer": "Asha"}`)
	require.NoError(t, err)

	var tx map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &tx))
	assert.Equal(t, "Asha", tx["buyer"])
	hash, _ := tx["blockchain_hash"].(string)
	assert.Len(t, hash, 64)

	data, err := os.ReadFile(filepath.Join(dir, "demo_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), hash)

	_, err = run(t, dir, "transact", `[1, 2]`)
	assert.Error(t, err)
}

func TestTransactCmdReadsStdin(t *testing.T) {
	dir := t.TempDir()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := newRootCmd()
	root.SetIn(strings.NewReader(`{"buyer": "Ravi"}`))
	output, err := executeCommand(root, "transact",
		"--data", filepath.Join(dir, "materials.json"),
		"--transactions", filepath.Join(dir, "demo_data.json"),
		"--photo-path", filepath.Join(dir, "photos"),
	)
	require.NoError(t, err)
	assert.Contains(t, output, `"buyer": "Ravi"`)
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "sell", "--title", "Boxes", "--category", "Paper & Cardboard", "--quantity", "300")
	require.NoError(t, err)

	out := filepath.Join(dir, "listings.xlsx")
	output, err := run(t, dir, "export", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, output, out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows("Materials")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paper & Cardboard", rows[1][2])
}

func TestNewPhotoStore(t *testing.T) {
	ctx := context.Background()

	stg, err := newPhotoStore(ctx, &config.Config{PhotoBackend: "local", PhotoPath: t.TempDir()}, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, stg)

	_, err = newPhotoStore(ctx, &config.Config{PhotoBackend: "s3"}, slog.Default())
	assert.Error(t, err, "s3 without a bucket")

	_, err = newPhotoStore(ctx, &config.Config{PhotoBackend: "ftp"}, slog.Default())
	assert.ErrorContains(t, err, `unknown photo backend "ftp"`)
}

func TestLogFileReleasedWhenCommandFails(t *testing.T) {
	released := 0
	c := &cli{cleanup: func() { released++ }}
	cmd := &cobra.Command{
		Use:  "fail",
		RunE: func(*cobra.Command, []string) error { return errors.New("boom") },
	}
	c.releaseAfter(cmd)

	err := cmd.RunE(cmd, nil)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, released)

	c.release()
	assert.Equal(t, 1, released, "cleanup runs once")
}

func TestLogFileWrittenForFailingCommand(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "ecoexchange.log")

	_, err := run(t, dir, "sell", "--title", "Scrap", "--category", "Metals", "--log-level", "debug", "--log-file", logFile)
	require.ErrorIs(t, err, service.ErrInvalidListing)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "application started")
}
