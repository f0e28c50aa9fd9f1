/*
Package padding provides the block padding schemes used by chug.

Both schemes round data up to a multiple of a block size with random filler, and both can recover the exact original data afterward.

# LengthPrefixed

The padded buffer is laid out as [length prefix][random filler][data].
The prefix records how many bytes of prefix and filler were added, and is 1, 2, or 4 bytes wide depending on that amount.
The width is not stored anywhere, Unpad re-derives it from the total buffer length.

Only a 1 byte prefix round trips reliably.
Block sizes up to 255, with padded buffers up to 513 bytes, always stay within that range.
Larger buffers are decoded with a wider prefix and the data offset is always read as prefix value + 1, so the recovered data will not match.
LengthPrefixed.RoundTrips reports whether a given data length stays within MaxRoundTripLength and MaxRoundTripBlockSize.

# ZeroSuffixed

The padded buffer is laid out as [non-zero random filler][0x00][data].
Unpad scans for the first zero byte, so any data length works.
The padded buffer is always at least one byte longer than the data.

# Randomness

Filler is drawn from a RandomSource, which defaults to crypto/rand.
Use WithRandomSource to substitute a deterministic reader in tests.
*/
package padding
