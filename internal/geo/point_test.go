package geo

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestFromRequest(t *testing.T) {
	t.Run("SeparateFields", func(t *testing.T) {
		p, err := FromRequest(f64(31.5), f64(75.3), nil)
		if err != nil {
			t.Fatalf("FromRequest failed: %v", err)
		}
		if p.Lat != 31.5 || p.Lng != 75.3 {
			t.Errorf("got point %+v, want lat=31.5 lng=75.3", p)
		}
	})

	t.Run("PairWhenFieldsAbsent", func(t *testing.T) {
		p, err := FromRequest(nil, nil, []float64{75.3, 31.5})
		if err != nil {
			t.Fatalf("FromRequest failed: %v", err)
		}
		if p.Lat != 31.5 || p.Lng != 75.3 {
			t.Errorf("pair should be read as [lng, lat], got %+v", p)
		}
	})

	t.Run("PairWhenOneFieldAbsent", func(t *testing.T) {
		p, err := FromRequest(f64(10), nil, []float64{75.3, 31.5})
		if err != nil {
			t.Fatalf("FromRequest failed: %v", err)
		}
		if p.Lat != 31.5 || p.Lng != 75.3 {
			t.Errorf("incomplete separate fields should fall back to the pair, got %+v", p)
		}
	})

	t.Run("SeparateFieldsTakePrecedence", func(t *testing.T) {
		p, err := FromRequest(f64(31.5), f64(75.3), []float64{0, 0})
		if err != nil {
			t.Fatalf("FromRequest failed: %v", err)
		}
		if p.Lat != 31.5 || p.Lng != 75.3 {
			t.Errorf("separate fields must win when both shapes are present, got %+v", p)
		}
	})

	t.Run("MissingBothShapes", func(t *testing.T) {
		if _, err := FromRequest(nil, nil, nil); !errors.Is(err, ErrMissingCoordinates) {
			t.Errorf("expected ErrMissingCoordinates, got %v", err)
		}
	})

	t.Run("LatitudeOutOfRange", func(t *testing.T) {
		if _, err := FromRequest(f64(91), f64(75.3), nil); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})

	t.Run("LongitudeOutOfRange", func(t *testing.T) {
		if _, err := FromRequest(f64(31.5), f64(-181), nil); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})

	t.Run("PairOutOfRange", func(t *testing.T) {
		if _, err := FromRequest(nil, nil, []float64{200, 31.5}); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})
}

func TestFromPair(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := FromPair([]float64{75.3, 31.5})
		if err != nil {
			t.Fatalf("FromPair failed: %v", err)
		}
		if p.Lng != 75.3 || p.Lat != 31.5 {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("WrongLength", func(t *testing.T) {
		if _, err := FromPair([]float64{75.3}); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		if _, err := FromPair([]float64{75.3, 200}); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})
}

func TestPointJSON(t *testing.T) {
	t.Run("MarshalGeoJSONOrdering", func(t *testing.T) {
		raw, err := json.Marshal(Point{Lng: 75.3, Lat: 31.5})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		var decoded struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded.Type != "Point" {
			t.Errorf("type = %q, want Point", decoded.Type)
		}
		if len(decoded.Coordinates) != 2 || decoded.Coordinates[0] != 75.3 || decoded.Coordinates[1] != 31.5 {
			t.Errorf("coordinates = %v, want [75.3 31.5] in [lng, lat] order", decoded.Coordinates)
		}
	})

	t.Run("UnmarshalRoundTrip", func(t *testing.T) {
		var p Point
		if err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[75.3,31.5]}`), &p); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if p.Lng != 75.3 || p.Lat != 31.5 {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("UnmarshalRejectsOutOfRange", func(t *testing.T) {
		var p Point
		err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[75.3,200]}`), &p)
		if !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("expected ErrInvalidCoordinates, got %v", err)
		}
	})

	t.Run("UnmarshalRejectsNonPoint", func(t *testing.T) {
		var p Point
		err := json.Unmarshal([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`), &p)
		if err == nil {
			t.Error("expected an error for non-point geometry")
		}
	})
}

func TestDistanceMeters(t *testing.T) {
	t.Run("ZeroForSamePoint", func(t *testing.T) {
		p := Point{Lng: 75.0, Lat: 31.5}
		if d := DistanceMeters(p, p); d != 0 {
			t.Errorf("distance between identical points = %f, want 0", d)
		}
	})

	t.Run("OneDegreeLatitude", func(t *testing.T) {
		a := Point{Lng: 75.0, Lat: 31.0}
		b := Point{Lng: 75.0, Lat: 32.0}
		got := DistanceMeters(a, b)
		want := 111194.9 // one degree of latitude on the mean-radius sphere
		if math.Abs(got-want) > want*0.01 {
			t.Errorf("distance = %f, want within 1%% of %f", got, want)
		}
	})
}
