// Package recipient contains the Recipient aggregate. Contact details live
// here only as ciphertext; coordinates are coarsened before storage. The
// aggregate also carries the soft-delete and data-purge lifecycle required by
// the retention policy.
package recipient
