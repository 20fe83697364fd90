package refdata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names inside a reference directory.
const (
	KeywordsFile  = "keywords.yaml"
	MerchantsFile = "merchants.csv"
	BanksFile     = "banks.csv"
)

// Load reads and compiles the reference tables stored in dir.
func Load(dir string) (*ReferenceData, error) {
	t, err := ReadTables(dir)
	if err != nil {
		return nil, err
	}
	rd, err := New(t)
	if err != nil {
		return nil, fmt.Errorf("compiling reference data: %w", err)
	}
	return rd, nil
}

// ReadTables reads the raw reference tables stored in dir.
func ReadTables(dir string) (Tables, error) {
	var t Tables

	data, err := os.ReadFile(filepath.Join(dir, KeywordsFile))
	if err != nil {
		return Tables{}, fmt.Errorf("reading keywords: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing keywords: %w", err)
	}

	f, err := os.Open(filepath.Join(dir, MerchantsFile))
	if err != nil {
		return Tables{}, fmt.Errorf("opening merchants: %w", err)
	}
	defer f.Close()
	if t.Merchants, err = ReadMerchants(f); err != nil {
		return Tables{}, fmt.Errorf("reading merchants: %w", err)
	}

	bf, err := os.Open(filepath.Join(dir, BanksFile))
	if err != nil {
		return Tables{}, fmt.Errorf("opening banks: %w", err)
	}
	defer bf.Close()
	if t.Banks, err = ReadBanks(bf); err != nil {
		return Tables{}, fmt.Errorf("reading banks: %w", err)
	}

	return t, nil
}

// Save writes tables to dir, creating it if needed.
func Save(dir string, t Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating reference dir: %w", err)
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling keywords: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeywordsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing keywords: %w", err)
	}

	mf, err := os.Create(filepath.Join(dir, MerchantsFile))
	if err != nil {
		return fmt.Errorf("creating merchants file: %w", err)
	}
	defer mf.Close()
	if err := WriteMerchants(mf, t.Merchants); err != nil {
		return fmt.Errorf("writing merchants: %w", err)
	}

	bf, err := os.Create(filepath.Join(dir, BanksFile))
	if err != nil {
		return fmt.Errorf("creating banks file: %w", err)
	}
	defer bf.Close()
	if err := WriteBanks(bf, t.Banks); err != nil {
		return fmt.Errorf("writing banks: %w", err)
	}
	return nil
}
