package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConf struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConf) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("MUNINN_TEST_NAME", "fromenv")
	path := writeYAML(t, "name: ${MUNINN_TEST_NAME}\nport: 8080\n")

	var c testConf
	if err := Load(path, &c); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "fromenv" {
		t.Errorf("Name = %q, want fromenv", c.Name)
	}
}

func TestLoadRunsValidator(t *testing.T) {
	path := writeYAML(t, "name: x\nport: 0\n")
	var c testConf
	if err := Load(path, &c); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadIfPresentAbsentKeepsDefaults(t *testing.T) {
	c := testConf{Name: "default", Port: 1}
	loaded, err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"), &c)
	if err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if loaded {
		t.Error("loaded = true for an absent file")
	}
	if c.Name != "default" || c.Port != 1 {
		t.Errorf("defaults disturbed: %+v", c)
	}
}

func TestLoadIfPresentReadsExisting(t *testing.T) {
	path := writeYAML(t, "name: filevalue\nport: 9\n")
	var c testConf
	loaded, err := LoadIfPresent(path, &c)
	if err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if !loaded || c.Name != "filevalue" {
		t.Errorf("loaded = %v, conf = %+v", loaded, c)
	}
}

func TestLoadIfPresentBadFileIsAnError(t *testing.T) {
	path := writeYAML(t, "::: not yaml :::")
	var c testConf
	if _, err := LoadIfPresent(path, &c); err == nil {
		t.Fatal("expected parse error")
	}
}
