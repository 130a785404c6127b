package repository

// Display-name expressions shared by the read-side joins.
const (
	patientNameSQL = "patients.first_name || ' ' || patients.last_name"
	doctorNameSQL  = "doctor_users.name"
	joinDoctorUser = "JOIN doctors ON doctors.id = %s.doctor_id JOIN users AS doctor_users ON doctor_users.id = doctors.user_id"
)
