package trace

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/propnet/internal/network"
)

// ReadEvents returns all recorded events for the journal's network in
// sequence order.
func (j *Journal) ReadEvents() ([]network.Event, error) {
	rows, err := j.db.Query(`
		SELECT seq, turn, type, cell, propagator, premise, old, new, believed, wiring
		FROM events
		WHERE network = ?
		ORDER BY seq, turn
	`, j.network)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ReadEventsOfType returns the network's events with the given type, in
// sequence order.
func (j *Journal) ReadEventsOfType(t network.EventType) ([]network.Event, error) {
	rows, err := j.db.Query(`
		SELECT seq, turn, type, cell, propagator, premise, old, new, believed, wiring
		FROM events
		WHERE network = ? AND type = ?
		ORDER BY seq, turn
	`, j.network, string(t))
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Summary counts recorded events per type.
func (j *Journal) Summary() (map[network.EventType]int, error) {
	rows, err := j.db.Query(`
		SELECT type, COUNT(*)
		FROM events
		WHERE network = ?
		GROUP BY type
	`, j.network)
	if err != nil {
		return nil, fmt.Errorf("summarize events: %w", err)
	}
	defer rows.Close()

	summary := make(map[network.EventType]int)
	for rows.Next() {
		var t string
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("summarize events: %w", err)
		}
		summary[network.EventType(t)] = count
	}
	return summary, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]network.Event, error) {
	var events []network.Event
	for rows.Next() {
		var ev network.Event
		var typ, wiring string
		var believed int
		if err := rows.Scan(&ev.Seq, &ev.Turn, &typ, &ev.Cell, &ev.Propagator,
			&ev.Premise, &ev.Old, &ev.New, &believed, &wiring); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Type = network.EventType(typ)
		ev.Believed = believed != 0
		if wiring != "" {
			ev.Wiring = strings.Split(wiring, ",")
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
