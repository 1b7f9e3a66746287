// Package checksum fingerprints source listing files.
//
// Every load run logs the SHA-256 of the input file it consumed, so a
// run in the logs can be matched to the exact listings snapshot that
// produced it, independent of file names or timestamps.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.Calculate(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
