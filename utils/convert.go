// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a normalized sample to signed 16-bit PCM.
// Values outside [-1, 1] are clamped; the scale is symmetric (±32767).
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x) * 32767.0)
}

// Int16ToFloat32 converts signed 16-bit PCM to a normalized sample.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// IntToFloat32 converts a signed PCM integer of the given bit depth to a
// normalized sample. 8-bit input is treated as unsigned, as stored by WAV.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v-128) / 128.0
	case 16:
		return float32(v) / 32768.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		if bitDepth <= 0 || bitDepth > 32 {
			return 0
		}
		return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
	}
}
