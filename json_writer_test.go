package alpha

import "testing"

func TestJSONObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("name", "Foo")
	w.Append("quantity", 100)
	w.Optional("code", "")    // omitted, zero value
	w.Optional("market", "CN")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Foo","quantity":100,"market":"CN"}`
	if string(got) != want {
		t.Errorf("marshaled = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_Empty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("marshaled = %s, want {}", got)
	}
}
