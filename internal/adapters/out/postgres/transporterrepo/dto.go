package transporterrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TransporterProfileDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	DisplayName        string          `gorm:"type:varchar(255);not null"`
	ContactNumber      string          `gorm:"type:varchar(32);not null"`
	Type               int             `gorm:"type:smallint;not null"`
	TradeLicenseNumber string          `gorm:"type:varchar(64)"`
	BaseLocation       LocationDTO     `gorm:"embedded;embeddedPrefix:base_"`
	ServiceRadiusKm    float64         `gorm:"type:double precision;not null"`
	Verified           bool            `gorm:"not null;index"`
	Rating             decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	CompletedJobs      int             `gorm:"not null"`
	Version            int             `gorm:"not null"`
	Drivers            []DriverDTO     `gorm:"foreignKey:TransporterID;constraint:OnDelete:CASCADE"`
	Vehicles           []VehicleDTO    `gorm:"foreignKey:TransporterID;constraint:OnDelete:CASCADE"`
}

func (TransporterProfileDTO) TableName() string {
	return "transporter_profiles"
}

type LocationDTO struct {
	Latitude   float64 `gorm:"type:double precision;not null"`
	Longitude  float64 `gorm:"type:double precision;not null"`
	Division   string  `gorm:"type:varchar(64);not null"`
	District   string  `gorm:"type:varchar(64);not null"`
	Thana      string  `gorm:"type:varchar(64);not null"`
	PostalCode string  `gorm:"type:varchar(16)"`
	Address    string  `gorm:"type:varchar(255);not null"`
}

type DriverDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransporterID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName           string    `gorm:"type:varchar(255);not null"`
	Phone              string    `gorm:"type:varchar(32);not null"`
	LicenseNumber      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_drivers_license_number"`
	LicenseExpiry      time.Time `gorm:"not null"`
	LicenseDocumentRef string    `gorm:"type:varchar(255)"`
	NIDNumber          string    `gorm:"column:nid_number;type:varchar(32);not null"`
	Status             int       `gorm:"type:smallint;not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type VehicleDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransporterID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RegistrationNumber string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_vehicles_registration_number"`
	Type               int             `gorm:"type:smallint;not null"`
	CapacityTon        decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	FitnessExpiry      time.Time       `gorm:"not null"`
	DocumentRefs       pq.StringArray  `gorm:"type:text[]"`
	Status             int             `gorm:"type:smallint;not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(p *transporter.TransporterProfile) TransporterProfileDTO {
	profileID := p.ID().Bytes()

	drivers := make([]DriverDTO, 0, len(p.Drivers()))
	for _, d := range p.Drivers() {
		drivers = append(drivers, DriverDTO{
			ID:                 d.ID().Bytes(),
			TransporterID:      profileID,
			FullName:           d.FullName(),
			Phone:              d.Phone(),
			LicenseNumber:      d.LicenseNumber(),
			LicenseExpiry:      d.LicenseExpiry(),
			LicenseDocumentRef: d.LicenseDocumentRef(),
			NIDNumber:          d.NIDNumber(),
			Status:             int(d.Status()),
		})
	}

	vehicles := make([]VehicleDTO, 0, len(p.Vehicles()))
	for _, v := range p.Vehicles() {
		vehicles = append(vehicles, VehicleDTO{
			ID:                 v.ID().Bytes(),
			TransporterID:      profileID,
			RegistrationNumber: v.RegistrationNumber(),
			Type:               int(v.Type()),
			CapacityTon:        v.CapacityTon(),
			FitnessExpiry:      v.FitnessExpiry(),
			DocumentRefs:       v.DocumentRefs(),
			Status:             int(v.Status()),
		})
	}

	loc := p.BaseLocation()
	return TransporterProfileDTO{
		ID:                 profileID,
		UserID:             p.UserID().Bytes(),
		DisplayName:        p.DisplayName(),
		ContactNumber:      p.ContactNumber(),
		Type:               int(p.Type()),
		TradeLicenseNumber: p.TradeLicenseNumber(),
		BaseLocation: LocationDTO{
			Latitude:   loc.Latitude(),
			Longitude:  loc.Longitude(),
			Division:   loc.Division(),
			District:   loc.District(),
			Thana:      loc.Thana(),
			PostalCode: loc.PostalCode(),
			Address:    loc.Address(),
		},
		ServiceRadiusKm: p.ServiceRadiusKm(),
		Verified:        p.IsVerified(),
		Rating:          p.Rating(),
		CompletedJobs:   p.CompletedJobs(),
		Version:         p.Version(),
		Drivers:         drivers,
		Vehicles:        vehicles,
	}
}

func toDomain(dto TransporterProfileDTO) (*transporter.TransporterProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(
		dto.BaseLocation.Latitude,
		dto.BaseLocation.Longitude,
		dto.BaseLocation.Division,
		dto.BaseLocation.District,
		dto.BaseLocation.Thana,
		dto.BaseLocation.PostalCode,
		dto.BaseLocation.Address,
	)
	if err != nil {
		return nil, err
	}

	drivers := make([]*transporter.Driver, 0, len(dto.Drivers))
	for _, driverDto := range dto.Drivers {
		d, driverErr := driverToDomain(id, driverDto)
		if driverErr != nil {
			return nil, driverErr
		}
		drivers = append(drivers, d)
	}

	vehicles := make([]*transporter.Vehicle, 0, len(dto.Vehicles))
	for _, vehicleDto := range dto.Vehicles {
		v, vehicleErr := vehicleToDomain(id, vehicleDto)
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicles = append(vehicles, v)
	}

	details := transporter.ProfileDetails{
		DisplayName:        dto.DisplayName,
		ContactNumber:      dto.ContactNumber,
		Type:               transporter.TransporterType(dto.Type),
		TradeLicenseNumber: dto.TradeLicenseNumber,
		BaseLocation:       loc,
	}

	return transporter.RestoreTransporterProfile(
		id,
		userID,
		details,
		dto.ServiceRadiusKm,
		dto.Verified,
		dto.Rating,
		dto.CompletedJobs,
		drivers,
		vehicles,
		dto.Version,
	)
}

func driverToDomain(transporterID kernel.UUID, dto DriverDTO) (*transporter.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return transporter.RestoreDriver(id, transporterID, transporter.DriverDetails{
		FullName:           dto.FullName,
		Phone:              dto.Phone,
		LicenseNumber:      dto.LicenseNumber,
		LicenseExpiry:      dto.LicenseExpiry,
		LicenseDocumentRef: dto.LicenseDocumentRef,
		NIDNumber:          dto.NIDNumber,
	}, transporter.DriverStatus(dto.Status))
}

func vehicleToDomain(transporterID kernel.UUID, dto VehicleDTO) (*transporter.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return transporter.RestoreVehicle(id, transporterID, transporter.VehicleDetails{
		RegistrationNumber: dto.RegistrationNumber,
		Type:               transporter.VehicleType(dto.Type),
		CapacityTon:        dto.CapacityTon,
		FitnessExpiry:      dto.FitnessExpiry,
		DocumentRefs:       dto.DocumentRefs,
	}, transporter.VehicleStatus(dto.Status))
}
