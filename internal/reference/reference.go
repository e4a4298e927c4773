// Package reference holds the static disclosure attributes of each security.
package reference

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KotFed0t/schedule_fa/internal/model"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	CountryColumn     = "Country/Region name"
	CountryCodeColumn = "Country Name and Code"
	NameColumn        = "Name of entity"
	AddressColumn     = "Address of entity"
	ZipCodeColumn     = "ZIP Code"
	NatureColumn      = "Nature of entity"
)

// Columns is the declared order of the disclosure attributes.
var Columns = []string{CountryColumn, CountryCodeColumn, NameColumn, AddressColumn, ZipCodeColumn, NatureColumn}

type Security struct {
	Ticker      string `toml:"ticker"`
	Country     string `toml:"country"`
	CountryCode int    `toml:"country_code"`
	Name        string `toml:"name"`
	Address     string `toml:"address"`
	ZipCode     string `toml:"zip_code"`
	Nature      string `toml:"nature"`
}

func (s Security) details() model.TickerDetails {
	return model.TickerDetails{
		Ticker: s.Ticker,
		Fields: []model.Cell{
			{Name: CountryColumn, Value: s.Country},
			{Name: CountryCodeColumn, Value: strconv.Itoa(s.CountryCode)},
			{Name: NameColumn, Value: s.Name},
			{Name: AddressColumn, Value: s.Address},
			{Name: ZipCodeColumn, Value: s.ZipCode},
			{Name: NatureColumn, Value: s.Nature},
		},
	}
}

type file struct {
	Securities []Security `toml:"security"`
}

type Table struct {
	details map[string]model.TickerDetails
}

func New(securities []Security) *Table {
	t := &Table{details: make(map[string]model.TickerDetails, len(securities))}
	for _, s := range securities {
		s.Ticker = strings.ToUpper(strings.TrimSpace(s.Ticker))
		t.details[s.Ticker] = s.details()
	}
	return t
}

// Load reads [[security]] entries from a TOML file; an empty path yields the
// built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse reference file %s: %w", path, err)
	}

	return New(f.Securities), nil
}

func (t *Table) Lookup(ticker string) (model.TickerDetails, bool) {
	d, ok := t.details[strings.ToUpper(strings.TrimSpace(ticker))]
	return d, ok
}

func (t *Table) Columns() []string {
	return append([]string(nil), Columns...)
}

func (t *Table) Len() int {
	return len(t.details)
}

func Default() *Table {
	return New([]Security{
		{
			Ticker:      "ADBE",
			Country:     "UNITED STATES OF AMERICA",
			CountryCode: 2,
			Name:        "Adobe Inc(ADBE)",
			Address:     "San Jose California United States",
			ZipCode:     "95110",
			Nature:      "Company",
		},
		{
			Ticker:      "MSFT",
			Country:     "UNITED STATES OF AMERICA",
			CountryCode: 2,
			Name:        "Microsoft Corporation(MSFT)",
			Address:     "One Microsoft Way Redmond WA United States",
			ZipCode:     "98052",
			Nature:      "Company",
		},
		{
			Ticker:      "META",
			Country:     "UNITED STATES OF AMERICA",
			CountryCode: 2,
			Name:        "Meta Platforms Inc(META)",
			Address:     "1 Meta Way Menlo Park CA United States",
			ZipCode:     "94025",
			Nature:      "Company",
		},
		{
			Ticker:      "GOOGL",
			Country:     "UNITED STATES OF AMERICA",
			CountryCode: 2,
			Name:        "Alphabet Inc - Class A Shares(GOOGL)",
			Address:     "1600 Amphitheatre Parkway Mountain View CA United States",
			ZipCode:     "94043",
			Nature:      "Company",
		},
		{
			Ticker:      "NVDA",
			Country:     "UNITED STATES OF AMERICA",
			CountryCode: 2,
			Name:        "Nvidia Corporation(NVDA)",
			Address:     "2788 San Tomas Expressway Santa Clara CA United States",
			ZipCode:     "95051",
			Nature:      "Company",
		},
	})
}
