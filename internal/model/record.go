package model

import "fmt"

// Byte size units
const (
	MiB = 1024 * 1024
	GiB = 1024 * 1024 * 1024
)

// Display values written to history for completed downloads
const (
	CompletedTimeLeft     = "N/A"
	CompletedTransferRate = "0.00 MB/s"
)

// DownloadRecord is one persisted history row. All fields are display
// strings; the store keys rows logically by Filename and tolerates
// duplicates, so a delete by filename removes every matching row.
type DownloadRecord struct {
	ID           int64
	Filename     string
	FileSize     string
	Status       string
	TimeLeft     string
	TransferRate string
}

// SizeString formats a byte count with two-decimal precision, choosing GB
// once the size reaches 1 GiB and MB below that.
func SizeString(bytes int64) string {
	if bytes >= GiB {
		return fmt.Sprintf("%.2f GB", float64(bytes)/GiB)
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/MiB)
}

// MiBString renders a byte count in MiB with two decimals, the unit used by
// the live progress labels and table rows.
func MiBString(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/MiB)
}

// RateString renders a bytes-per-second rate in MiB/s with two decimals.
func RateString(bytesPerSec float64) string {
	return fmt.Sprintf("%.2f MB/s", bytesPerSec/MiB)
}

// CompletedRecord builds the history row written after a transfer's artifact
// has been probed on disk.
func CompletedRecord(filename string, sizeBytes int64) DownloadRecord {
	return DownloadRecord{
		Filename:     filename,
		FileSize:     SizeString(sizeBytes),
		Status:       TransferStatusCompleted.String(),
		TimeLeft:     CompletedTimeLeft,
		TransferRate: CompletedTransferRate,
	}
}
