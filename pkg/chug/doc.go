/*
Package chug provides a small symmetric byte transform with optional block padding.

Note that this is NOT secure encryption.
The transform is a reversible, deterministic mixing function with no authentication, and it makes no claim to resist analysis.
Treat it as an encoding that requires knowledge of the key to reverse.

# How it works:

Each byte is combined with a signed sum of key bytes.
For the byte at position i, the key is walked with an index j running from i % len(key) up to (but not including) len(key)+i, wrapping around the key as needed.
A key byte is added when i+j is even and subtracted when it's odd.
The result wraps to a byte exactly as an 8-bit two's complement truncation would.
Reverse subtracts the same sum, so Reverse(Forward(data, key), key) always returns data.

A Cipher combines the transform with a padding.Algorithm.
With padding enabled, Encrypt pads and then applies Forward, and Decrypt applies Reverse and then removes the padding.

# Streams:

NewWriter and NewReader apply the transform to a stream, tracking the position of each byte.
Streams are never padded, since padding requires knowledge of the total length.

# General guidelines:
  - Keys must contain at least one byte. GenKey will generate a secure random key.
  - Padding adds random filler, so encrypting the same data twice will produce different output when padding is enabled.
  - The padding.LengthPrefixed scheme only round trips padded buffers of up to 513 bytes, see the padding package for details.
  - Params can be written alongside encrypted data to recreate the same Cipher for decryption.
*/
package chug
