package core

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// AdductDatabase stores ion adduct definitions
type AdductDatabase struct {
	adducts map[string]float64 // name -> mass shift
}

// NewAdductDatabase creates an empty adduct database
func NewAdductDatabase() *AdductDatabase {
	return &AdductDatabase{
		adducts: make(map[string]float64),
	}
}

// LoadFromCSV loads adducts from a CSV file (format: name,mass)
func (db *AdductDatabase) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	// Skip header line
	if scanner.Scan() {
		// header line
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("line %d: invalid format, expected at least 2 comma-separated fields", lineNum)
		}

		name := strings.TrimSpace(parts[0])
		massStr := strings.TrimSpace(parts[1])

		mass, err := strconv.ParseFloat(massStr, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid mass value '%s': %w", lineNum, massStr, err)
		}

		db.adducts[name] = mass
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading CSV: %w", err)
	}

	return nil
}

// GetMass returns the mass shift for an adduct name
func (db *AdductDatabase) GetMass(name string) (float64, bool) {
	mass, ok := db.adducts[name]
	return mass, ok
}

// Add adds or updates an adduct
func (db *AdductDatabase) Add(name string, mass float64) {
	db.adducts[name] = mass
}

// Names returns the known adduct names in sorted order
func (db *AdductDatabase) Names() []string {
	names := make([]string, 0, len(db.adducts))
	for name := range db.adducts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve interprets s as an adduct name or a literal mass shift
func (db *AdductDatabase) Resolve(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if mass, ok := db.GetMass(s); ok {
		return mass, nil
	}
	mass, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown adduct '%s'", s)
	}
	return mass, nil
}

// DefaultAdductDatabase returns an AdductDatabase pre-loaded with common
// positive-mode adducts of neutral lipids
func DefaultAdductDatabase() *AdductDatabase {
	db := NewAdductDatabase()

	db.Add("None", 0)
	db.Add("H", ProtonMass)
	db.Add("Li", 7.016003437-ElectronMass)
	db.Add("NH4", 14.0030740052+4*MassH-ElectronMass)
	db.Add("Na", 22.98976928-ElectronMass)
	db.Add("K", 38.9637064864-ElectronMass)

	return db
}
