// Command inspect dumps the record store for debugging. Read-only; safe to
// run against a live server's data directory copy.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// Local mirrors of the stored record shapes. Field numbers must match the
// repositories package.
type messageRow struct {
	ID          string `cbor:"1,keyasint"`
	TeamID      string `cbor:"2,keyasint"`
	MissionID   string `cbor:"3,keyasint"`
	SenderID    string `cbor:"4,keyasint"`
	Content     string `cbor:"5,keyasint"`
	IsEncrypted bool   `cbor:"6,keyasint"`
	At          int64  `cbor:"7,keyasint"`
}

type notificationRow struct {
	ID        string `cbor:"1,keyasint"`
	UserID    string `cbor:"2,keyasint"`
	Type      string `cbor:"3,keyasint"`
	Title     string `cbor:"4,keyasint"`
	Content   string `cbor:"5,keyasint"`
	Read      bool   `cbor:"6,keyasint"`
	CreatedAt int64  `cbor:"7,keyasint"`
}

type membershipRow struct {
	TeamID   string `cbor:"1,keyasint"`
	UserID   string `cbor:"2,keyasint"`
	Role     string `cbor:"3,keyasint"`
	Status   string `cbor:"4,keyasint"`
	JoinedAt int64  `cbor:"5,keyasint"`
}

func main() {
	dbPath := flag.String("db", "/tmp/opsroom/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, notif:, member:, team:, mission:, user:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	color.Cyan.Printf("Scanning %s with prefix %q\n\n", *dbPath, *prefix)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Timestamp", "Owner", "Detail"})
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

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Secondary indexes carry no payload worth rendering.
			if strings.HasPrefix(key, "midx:") || strings.HasPrefix(key, "uteam:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				table.Append(toRow(key, v))
				rows++
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
	color.Green.Printf("\n%d rows\n", rows)
}

func toRow(key string, value []byte) []string {
	switch {
	case strings.HasPrefix(key, "msg:"):
		var row messageRow
		if err := cbor.Unmarshal(value, &row); err != nil {
			return rawRow(key, value, err)
		}
		detail := row.Content
		if row.IsEncrypted {
			detail = fmt.Sprintf("[encrypted, %d bytes]", len(row.Content))
		} else if len(detail) > 48 {
			detail = detail[:48] + "..."
		}
		return []string{key, "MESSAGE", formatNano(row.At), short(row.SenderID), detail}

	case strings.HasPrefix(key, "notif:"):
		var row notificationRow
		if err := cbor.Unmarshal(value, &row); err != nil {
			return rawRow(key, value, err)
		}
		state := "unread"
		if row.Read {
			state = "read"
		}
		detail := fmt.Sprintf("%s (%s, %s)", row.Title, row.Type, state)
		return []string{key, "NOTIFICATION", formatNano(row.CreatedAt), short(row.UserID), detail}

	case strings.HasPrefix(key, "member:"):
		var row membershipRow
		if err := cbor.Unmarshal(value, &row); err != nil {
			return rawRow(key, value, err)
		}
		detail := fmt.Sprintf("role=%s status=%s", row.Role, row.Status)
		return []string{key, "MEMBERSHIP", formatUnix(row.JoinedAt), short(row.UserID), detail}

	default:
		return rawRow(key, value, nil)
	}
}

func rawRow(key string, value []byte, err error) []string {
	detail := fmt.Sprintf("%d bytes", len(value))
	if err != nil {
		detail = "decode error: " + err.Error()
	}
	return []string{key, "RAW", "--:--:--", "--------", detail}
}

func formatNano(at int64) string {
	return time.Unix(0, at).Format("15:04:05")
}

func formatUnix(at int64) string {
	return time.Unix(at, 0).Format("15:04:05")
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
