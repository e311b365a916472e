package render

import (
	"io"

	"gopkg.in/yaml.v3"

	"gocardlessosm/internal/core"
)

type yamlRow struct {
	Section string     `yaml:"section"`
	Event   *string    `yaml:"event,omitempty"`
	Gross   *yaml.Node `yaml:"gross_amount"`
	Net     *yaml.Node `yaml:"net_amount"`
	Fees    *yaml.Node `yaml:"fees"`
}

type yamlReport struct {
	Date          string     `yaml:"date"`
	Gross         *yaml.Node `yaml:"gross_amount"`
	Net           *yaml.Node `yaml:"net_amount"`
	Fees          *yaml.Node `yaml:"fees"`
	Transactions  int        `yaml:"transactions"`
	Unclassified  int        `yaml:"unclassified"`
	Subscriptions []yamlRow  `yaml:"subscriptions"`
	Activities    []yamlRow  `yaml:"activities"`
	Summer        []yamlRow  `yaml:"summer"`
}

// amount keeps the two decimals a float would lose.
func amount(m core.Money) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: m.String()}
}

func yamlEvents(rows []core.EventRow) []yamlRow {
	out := make([]yamlRow, 0, len(rows))
	for _, row := range rows {
		event := row.Event
		out = append(out, yamlRow{
			Section: string(row.Section),
			Event:   &event,
			Gross:   amount(row.GrossAmount),
			Net:     amount(row.NetAmount),
			Fees:    amount(row.Fees),
		})
	}
	return out
}

// YAML writes the report without per-transaction records.
func YAML(w io.Writer, r core.Report) error {
	doc := yamlReport{
		Date:          r.Date.String(),
		Gross:         amount(r.GrossAmount),
		Net:           amount(r.NetAmount),
		Fees:          amount(r.Fees),
		Transactions:  r.Transactions,
		Unclassified:  r.Unclassified,
		Subscriptions: make([]yamlRow, 0, len(r.Subscriptions)),
		Activities:    yamlEvents(r.Activities),
		Summer:        yamlEvents(r.Summer),
	}
	for _, row := range r.Subscriptions {
		doc.Subscriptions = append(doc.Subscriptions, yamlRow{
			Section: string(row.Section),
			Gross:   amount(row.GrossAmount),
			Net:     amount(row.NetAmount),
			Fees:    amount(row.Fees),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
