package dto

type RegisterFCMTokenRequest struct {
	Token      string `json:"token" validate:"notblank,max=4096"`
	DeviceInfo string `json:"device_info" validate:"max=512"`
}

type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=200"`
}
