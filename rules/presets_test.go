package rules

import "testing"

func TestPresetsAreClosed(t *testing.T) {
	for _, p := range Presets() {
		if p.Table.States() == 0 || p.Table.Colors() == 0 {
			t.Errorf("%s: empty table", p.Name)
		}
		if !p.Table.Closed() {
			t.Errorf("%s: table references colors or states outside its dimensions", p.Name)
		}
	}
}

func TestPresetByName(t *testing.T) {
	p, ok := PresetByName("langton")
	if !ok {
		t.Fatal("langton preset missing")
	}
	if p.Table.States() != 1 || p.Table.Colors() != 2 {
		t.Errorf("langton = %dx%d, want 1x2", p.Table.States(), p.Table.Colors())
	}
	if r := p.Table.At(0, 0); r.Write != 1 || r.Turn != Right {
		t.Errorf("langton color 0 rule = %+v, want write 1 turn R", r)
	}

	if _, ok := PresetByName("no-such-preset"); ok {
		t.Error("unknown name should report false")
	}
}

func TestPresetsReturnFreshCopies(t *testing.T) {
	a, _ := PresetByName("langton")
	a.Table.Set(0, 0, Rule{Write: 0, Turn: Left})

	b, _ := PresetByName("langton")
	if b.Table.At(0, 0).Write != 1 {
		t.Error("mutating one preset copy leaked into the next")
	}
}
