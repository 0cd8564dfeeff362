package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"emergency-hub/domain"
)

// Offline inspector for the event store. Opens the Badger directory
// read-only and dumps the time-ordered records under a prefix.
func main() {
	dbPath := flag.String("db", "/tmp/emergency-hub", "Path to badger DB")
	// Default to "alert:" so the secondary alertidx: entries stay out of the way
	prefix := flag.String("prefix", "alert:", "Prefix to scan (alert: or activity:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Timestamp", "Entity ID", "Status", "Who", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			rawKey := string(item.Key())

			// Skip the id -> primary key pointers
			if strings.Contains(rawKey, "idx:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				row, err := toRow(rawKey, v)
				if err != nil {
					// Log and keep going instead of aborting the whole scan
					fmt.Printf("Error decoding key %s: %v\n", rawKey, err)
					return nil
				}
				table.Append(row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func toRow(rawKey string, value []byte) ([]string, error) {
	if strings.HasPrefix(rawKey, "activity:") {
		var activity domain.ActivityEvent
		if err := json.Unmarshal(value, &activity); err != nil {
			return nil, err
		}
		return []string{
			rawKey,
			activity.Timestamp.Format("15:04:05"),
			shortID(activity.ID.String()),
			string(activity.Category),
			activity.User.Name,
			"category selection",
		}, nil
	}

	var alert domain.PanicAlert
	if err := json.Unmarshal(value, &alert); err != nil {
		return nil, err
	}
	return []string{
		rawKey,
		alert.CreatedAt.Format("15:04:05"),
		shortID(alert.ID.String()),
		string(alert.Status),
		alert.User.Name,
		alert.Message,
	}, nil
}

// First 8 characters of the id keep the table readable
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A dirty shutdown can leave the value log needing a truncate;
		// open once in write mode to repair, then reopen read-only
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
