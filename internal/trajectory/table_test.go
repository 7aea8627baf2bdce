package trajectory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCSV = `Time,Latitude,Longitude,Altitude,Angle of Attack,Angle of Sideslip,True Velocity,Ground Velocity,X-Acceleration,Y-Acceleration,Z-Acceleration,Dynamic Pressure,Thrust,Mach,Pitch,Roll,Yaw,parachute_deploy_gain
0.0,40.24,140.01,10,0,0,0,0,0,0,0,0,800,0,85,0,0,0
0.1,40.24,140.01,12,1,0.5,30,28,80,1,2,500,1000,0.1,84,0,1,0
0.2,40.241,140.009,40,2,1,120,115,60,2,3,4000,900,0.35,80,1,2,0
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTable(t *testing.T) {
	table, err := ReadTable(writeSample(t))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(table.Rows))
	}
	v, err := table.Float(2, ColTrueVelocity)
	if err != nil {
		t.Fatalf("Float: %v", err)
	}
	if v != 120 {
		t.Errorf("True Velocity row 2 = %v, want 120", v)
	}

	_, err = table.Float(0, "No Such Column")
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("err = %v, want MissingColumnError", err)
	}
	if mce.Column != "No Such Column" {
		t.Errorf("missing column name = %q", mce.Column)
	}
}

func TestAccumulatingSchemaRoundTrip(t *testing.T) {
	path := writeSample(t)

	// First pass appends the derived columns and rewrites in place.
	table, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	traj, err := FromTable(table)
	if err != nil {
		t.Fatal(err)
	}
	derived := Derive(traj)
	if err := AppendDerivedColumns(table, derived); err != nil {
		t.Fatal(err)
	}
	if err := table.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	// Second pass sees and replaces the accumulated columns without
	// duplicating them.
	again, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, col := range []string{ColTotalAoA, ColGustAoA, ColGustVelocity, ColAcceleration} {
		if !again.HasColumn(col) {
			t.Fatalf("missing accumulated column %q", col)
		}
	}
	before := len(again.Columns)

	traj2, err := FromTable(again)
	if err != nil {
		t.Fatal(err)
	}
	if err := AppendDerivedColumns(again, Derive(traj2)); err != nil {
		t.Fatal(err)
	}
	if len(again.Columns) != before {
		t.Errorf("column count grew from %d to %d on second pass", before, len(again.Columns))
	}

	// The raw columns survive both passes byte for byte.
	first, err := again.FloatColumn(ColAltitude)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{10, 12, 40}, first); diff != "" {
		t.Errorf("altitude column mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTableValidation(t *testing.T) {
	t.Run("missing_column", func(t *testing.T) {
		table := &Table{Columns: []string{ColTime}, Rows: [][]string{{"0"}, {"1"}}}
		table.reindex()
		_, err := FromTable(table)
		if !IsMissingColumn(err) {
			t.Fatalf("err = %v, want MissingColumnError", err)
		}
	})

	t.Run("non_monotonic_time", func(t *testing.T) {
		table, err := ReadTable(writeSample(t))
		if err != nil {
			t.Fatal(err)
		}
		// Copy row 0's timestamp into row 2.
		table.Rows[2][0] = table.Rows[0][0]
		_, err = FromTable(table)
		if !errors.Is(err, ErrNonMonotonicTime) {
			t.Fatalf("err = %v, want ErrNonMonotonicTime", err)
		}
	})

	t.Run("too_few_records", func(t *testing.T) {
		table, err := ReadTable(writeSample(t))
		if err != nil {
			t.Fatal(err)
		}
		table.Rows = table.Rows[:1]
		_, err = FromTable(table)
		if !errors.Is(err, ErrTooFewRecords) {
			t.Fatalf("err = %v, want ErrTooFewRecords", err)
		}
	})
}

func TestTrimFinalInstants(t *testing.T) {
	table, err := ReadTable(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	// Margin of 0.01s drops only the final record (at 0.2s).
	if err := TrimFinalInstants(table, 0.01); err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("row count after trim = %d, want 2", len(table.Rows))
	}
	last, err := table.Float(len(table.Rows)-1, ColTime)
	if err != nil {
		t.Fatal(err)
	}
	if last != 0.1 {
		t.Errorf("last time after trim = %v, want 0.1", last)
	}
}
