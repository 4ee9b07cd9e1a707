package state

import (
	"reflect"
	"testing"
)

func TestPluginMerge_EnabledPluginsUnionPreservesOrder(t *testing.T) {
	a := DefaultPluginSystemState()
	a.EnabledPlugins = []string{"alpha", "beta", "gamma"}

	b := DefaultPluginSystemState()
	b.EnabledPlugins = []string{"beta", "delta", "alpha", "epsilon"}

	a.Merge(&b)

	want := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	if !reflect.DeepEqual(a.EnabledPlugins, want) {
		t.Errorf("enabled plugins = %v, want %v", a.EnabledPlugins, want)
	}
}

func TestPluginMerge_LoadOrderFullyReplaced(t *testing.T) {
	a := DefaultPluginSystemState()
	a.LoadOrder = []string{"alpha", "beta"}

	b := DefaultPluginSystemState()
	b.LoadOrder = []string{"beta"}

	a.Merge(&b)

	if !reflect.DeepEqual(a.LoadOrder, []string{"beta"}) {
		t.Errorf("load order = %v, want full replacement [beta]", a.LoadOrder)
	}
}

func TestPluginMerge_ConfigsUnionByKey(t *testing.T) {
	kept := DefaultPluginConfig()
	kept.Priority = 1

	overwritten := DefaultPluginConfig()
	overwritten.Priority = 2

	a := DefaultPluginSystemState()
	a.PluginConfigs = map[string]PluginConfig{
		"kept":    kept,
		"updated": overwritten,
	}

	incoming := DefaultPluginConfig()
	incoming.Priority = 99
	added := DefaultPluginConfig()
	added.Priority = 50

	b := DefaultPluginSystemState()
	b.PluginConfigs = map[string]PluginConfig{
		"updated": incoming,
		"new":     added,
	}

	a.Merge(&b)

	if len(a.PluginConfigs) != 3 {
		t.Fatalf("config count = %d, want 3", len(a.PluginConfigs))
	}
	if a.PluginConfigs["kept"].Priority != 1 {
		t.Error("key absent from incoming must be preserved")
	}
	if a.PluginConfigs["updated"].Priority != 99 {
		t.Error("incoming entry must win on key conflict")
	}
	if a.PluginConfigs["new"].Priority != 50 {
		t.Error("incoming-only key must be added")
	}
}

func TestPluginMerge_SettingsUnion(t *testing.T) {
	aCfg := DefaultPluginConfig()
	aCfg.Settings = map[string]string{"keep": "1", "clash": "old"}

	bCfg := DefaultPluginConfig()
	bCfg.Settings = map[string]string{"clash": "new", "add": "2"}

	a := DefaultPluginSystemState()
	a.PluginConfigs = map[string]PluginConfig{"p": aCfg}
	b := DefaultPluginSystemState()
	b.PluginConfigs = map[string]PluginConfig{"p": bCfg}

	a.Merge(&b)

	got := a.PluginConfigs["p"].Settings
	want := map[string]string{"keep": "1", "clash": "new", "add": "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settings = %v, want %v", got, want)
	}
}

func TestPluginMerge_DoesNotAliasIncomingMaps(t *testing.T) {
	cfg := DefaultPluginConfig()
	cfg.Settings = map[string]string{"k": "v"}

	a := DefaultPluginSystemState()
	b := DefaultPluginSystemState()
	b.PluginConfigs = map[string]PluginConfig{"p": cfg}

	a.Merge(&b)

	b.PluginConfigs["p"].Settings["k"] = "mutated"
	if a.PluginConfigs["p"].Settings["k"] != "v" {
		t.Error("merged config must not share map storage with the incoming tree")
	}
}

func TestInputMerge_ShortcutsUnionByAction(t *testing.T) {
	a := DefaultInputConfig()
	a.KeyboardShortcuts = map[string]string{"save": "ctrl+s", "quit": "ctrl+q"}

	b := DefaultInputConfig()
	b.KeyboardShortcuts = map[string]string{"quit": "ctrl+w", "help": "f1"}
	b.Gaze.DwellTimeMs = 1200

	a.Merge(&b)

	want := map[string]string{"save": "ctrl+s", "quit": "ctrl+w", "help": "f1"}
	if !reflect.DeepEqual(a.KeyboardShortcuts, want) {
		t.Errorf("shortcuts = %v, want %v", a.KeyboardShortcuts, want)
	}
	if a.Gaze.DwellTimeMs != 1200 {
		t.Errorf("dwell time = %d, want incoming 1200", a.Gaze.DwellTimeMs)
	}
}

func TestScalarSectionMerge_OtherWins(t *testing.T) {
	a := DefaultAudioSettings()
	b := DefaultAudioSettings()
	b.MasterVolume = 0.2
	b.Device.SampleRate = 96000

	a.Merge(&b)

	if a.MasterVolume != 0.2 || a.Device.SampleRate != 96000 {
		t.Errorf("audio merge: got volume=%v rate=%d, want incoming values", a.MasterVolume, a.Device.SampleRate)
	}
}
