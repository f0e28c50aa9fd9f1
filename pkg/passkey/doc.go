/*
Package passkey derives chug keys from user-provided passphrases with scrypt.

A Generator creates a random Salt and derives a Key from it and the passphrase.
The salt, along with the Generator settings, may be stored next to the encrypted payload with WriteSettings.
ReadSettings recovers both, so the same Key can be derived again with Derive and the original passphrase.

Storing the salt doesn't weaken the Key, since the passphrase is still required to arrive at it.
Scrypt is memory and CPU hard, so a sufficiently tuned Generator makes brute forcing the passphrase impractical.
*/
package passkey
