package service

// ValidatePIN 校验名片口令格式：必须为 5 位数字。
func ValidatePIN(pin string) error {
	if len(pin) != 5 {
		return ErrInvalidPINFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPINFormat
		}
	}
	return nil
}
