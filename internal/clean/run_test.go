package clean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matthieukhl/salesclean/internal/catalog"
	"github.com/matthieukhl/salesclean/internal/models"
	"github.com/matthieukhl/salesclean/internal/samples"
)

func sampleDir(t *testing.T) (string, *catalog.Catalog) {
	t.Helper()
	dir := t.TempDir()
	if _, err := samples.Write(dir); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	cat, err := catalog.Load(context.Background(), filepath.Join(dir, samples.CatalogFile))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return dir, cat
}

func TestRunNoonSample(t *testing.T) {
	dir, cat := sampleDir(t)
	res := Run(context.Background(), models.Noon, filepath.Join(dir, samples.NoonFile), cat)
	if !res.OK() {
		t.Fatalf("run: state=%s err=%v", res.State, res.Err)
	}
	if res.RunID == "" {
		t.Fatalf("missing run id")
	}

	st := res.Table.Stats
	if st.RowsIn != 5 || st.MissingRequired != 1 || st.Excluded != 1 || st.RowsOut != 3 {
		t.Fatalf("stats: got=%+v", st)
	}

	first := res.Table.Records[0]
	if first.BrandName != "Glow Lab" || first.Category != "Beauty" || first.ChannelItemName != "Glow Lab Vitamin C Cream" {
		t.Fatalf("catalog backfill: got=%+v", first)
	}
	if first.GMV.String() != "120.5" || first.Fulfillment != models.FulfillmentNoon {
		t.Fatalf("got gmv=%s fulfillment=%s", first.GMV, first.Fulfillment)
	}
	if res.Fill.Matched != 1 {
		t.Fatalf("fill stats: got=%+v", res.Fill)
	}

	cancelled := res.Table.Records[1]
	if cancelled.Status != models.StatusCancelled || !cancelled.GMV.IsZero() {
		t.Fatalf("cancelled row: got status=%s gmv=%s", cancelled.Status, cancelled.GMV)
	}
	if got := res.Table.Records[2].NubPartner; got != models.NullLabel {
		t.Fatalf("unknown partner: got=%q", got)
	}
}

func TestRunAmazonSample(t *testing.T) {
	dir, cat := sampleDir(t)
	res := Run(context.Background(), models.Amazon, filepath.Join(dir, samples.AmazonFile), cat)
	if !res.OK() {
		t.Fatalf("run: state=%s err=%v", res.State, res.Err)
	}
	if res.Table.Len() != 4 {
		t.Fatalf("rows: got=%d want=4", res.Table.Len())
	}

	partners := map[string]int{}
	for _, r := range res.Table.Records {
		partners[r.NubPartner]++
		if r.Status == "Unshipped" {
			t.Fatalf("excluded status in output")
		}
	}
	if partners["Nub-Partner Wishcare"] != 2 || partners["Nub-Partner 100 MPH"] != 2 {
		t.Fatalf("partners: got=%v", partners)
	}

	mystery := res.Table.Records[3]
	if mystery.BrandName != "Gizmo" || mystery.Category != "Electronics" || mystery.QTY != 1 {
		t.Fatalf("mystery row: got=%+v", mystery)
	}
	if mystery.ChannelItemName != "Mystery Gadget" {
		t.Fatalf("item name overwritten: got=%q", mystery.ChannelItemName)
	}

	cat1 := res.Table.Records[2]
	if cat1.BrandName != "CAT" || !cat1.SalesPrice.IsZero() {
		t.Fatalf("cat row: got brand=%q price=%s", cat1.BrandName, cat1.SalesPrice)
	}
}

func TestRunRevibeSample(t *testing.T) {
	dir, cat := sampleDir(t)
	res := Run(context.Background(), models.Revibe, filepath.Join(dir, samples.RevibeFile), cat)
	if !res.OK() {
		t.Fatalf("run: state=%s err=%v", res.State, res.Err)
	}
	if res.Table.Len() != 3 {
		t.Fatalf("rows: got=%d want=3", res.Table.Len())
	}
	if res.Fill.Rows != 0 {
		t.Fatalf("revibe must not use the catalog: %+v", res.Fill)
	}
	var prev string
	for _, r := range res.Table.Records {
		d := r.Text(models.FieldDate)
		if d < prev {
			t.Fatalf("records not sorted by date: %s after %s", d, prev)
		}
		prev = d
	}
}

func TestRunWithoutCatalog(t *testing.T) {
	dir, _ := sampleDir(t)
	res := Run(context.Background(), models.Noon, filepath.Join(dir, samples.NoonFile), nil)
	if !res.OK() {
		t.Fatalf("run: %v", res.Err)
	}
	if res.Table.Records[0].BrandName != "" {
		t.Fatalf("brand filled without a catalog")
	}
}

func TestRunFailures(t *testing.T) {
	dir, cat := sampleDir(t)

	res := Run(context.Background(), models.Noon, filepath.Join(dir, "missing.csv"), cat)
	if res.State != StateFailed || !errors.Is(res.Err, ErrIngestion) || res.Stage() != "ingest" {
		t.Fatalf("missing file: state=%s stage=%s err=%v", res.State, res.Stage(), res.Err)
	}

	res = Run(context.Background(), models.Noon, filepath.Join(dir, samples.RevibeFile), cat)
	if res.State != StateFailed || !errors.Is(res.Err, ErrSchemaMismatch) {
		t.Fatalf("wrong export: state=%s err=%v", res.State, res.Err)
	}

	res = Run(context.Background(), "eBay", filepath.Join(dir, samples.NoonFile), cat)
	if res.State != StateFailed || !errors.Is(res.Err, ErrUnknownMarketplace) {
		t.Fatalf("unknown marketplace: state=%s err=%v", res.State, res.Err)
	}
}

func TestRunPendingMarketplace(t *testing.T) {
	dir, cat := sampleDir(t)

	res := Run(context.Background(), models.Talabat, filepath.Join(dir, samples.NoonFile), cat)
	if res.State != StateNotImplemented || res.OK() {
		t.Fatalf("got state=%s", res.State)
	}

	res = Run(context.Background(), models.Careem, filepath.Join(dir, "missing.csv"), cat)
	if res.State != StateNotImplemented || !errors.Is(res.Err, ErrIngestion) {
		t.Fatalf("missing input: state=%s err=%v", res.State, res.Err)
	}

	broken := filepath.Join(t.TempDir(), "talabat.xlsx")
	if err := os.WriteFile(broken, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res = Run(context.Background(), models.Talabat, broken, nil)
	if res.State != StateNotImplemented || res.Stage() != StageIngest {
		t.Fatalf("unreadable input: state=%s stage=%s err=%v", res.State, res.Stage(), res.Err)
	}
}

func TestRunReader(t *testing.T) {
	dir, cat := sampleDir(t)
	f, err := os.Open(filepath.Join(dir, samples.RevibeFile))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	res := RunReader(context.Background(), models.Revibe, "upload.csv", f, cat)
	if !res.OK() || res.Table.Len() != 3 || res.Source != "upload.csv" {
		t.Fatalf("got state=%s rows=%d source=%q err=%v", res.State, res.Table.Len(), res.Source, res.Err)
	}
}
