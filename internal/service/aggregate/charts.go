package aggregate

import (
	"sort"
	"time"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
)

// topEntityLimit caps categorical rankings at their five busiest entries.
const topEntityLimit = 5

// Chart palette, passed through to the renderer as-is.
const (
	colorBlue    = "rgba(59, 130, 246, 0.8)"
	colorGreen   = "rgba(16, 185, 129, 0.8)"
	colorAmber   = "rgba(245, 158, 11, 0.8)"
	colorRed     = "rgba(239, 68, 68, 0.8)"
	colorViolet  = "rgba(139, 92, 246, 0.8)"
	colorNeutral = "rgba(229, 231, 235, 0.8)"

	lineBorderColor = "rgb(59, 130, 246)"
	lineFillColor   = "rgba(59, 130, 246, 0.1)"

	statusPendingColor   = colorAmber
	statusConfirmedColor = "rgba(34, 197, 94, 0.8)"
	statusCancelledColor = colorRed
	statusCompletedColor = colorBlue
)

var rankingPalette = []string{colorBlue, colorGreen, colorAmber, colorRed, colorViolet}

// AppointmentsByDay builds the 7-day time series starting today. Each
// point counts realized (confirmed or completed) bookings on that calendar
// day. The series always has exactly 7 points, zero-filled where nothing
// is booked, and the first label is always "Today".
func AppointmentsByDay(bookings []models.Booking, now time.Time) models.ChartDataset {
	labels := make([]string, 0, weekWindowDays)
	dayKeys := make([]string, 0, weekWindowDays)
	counts := make(map[string]int, weekWindowDays)

	for i := 0; i < weekWindowDays; i++ {
		day := now.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		dayKeys = append(dayKeys, key)
		counts[key] = 0

		if i == 0 {
			labels = append(labels, "Today")
		} else {
			labels = append(labels, day.Format("Mon, Jan 2"))
		}
	}

	for _, b := range bookings {
		if !b.Status.Realized() {
			continue
		}
		if _, ok := counts[b.AppointmentDate]; ok {
			counts[b.AppointmentDate]++
		}
	}

	data := make([]int, 0, weekWindowDays)
	for _, key := range dayKeys {
		data = append(data, counts[key])
	}

	return models.ChartDataset{
		Labels: labels,
		Datasets: []models.ChartSeries{{
			Label:           "Confirmed Appointments",
			Data:            data,
			BorderColor:     lineBorderColor,
			BackgroundColor: []string{lineFillColor},
			Tension:         0.4,
			Fill:            true,
		}},
	}
}

// EntityKey extracts the grouping key and display label of the entity a
// ranking is built over.
type EntityKey func(models.Booking) (key, label string)

// ByDoctor groups bookings by the doctor seeing the patient.
func ByDoctor(b models.Booking) (string, string) {
	return entityKey(b.DoctorID, b.DoctorName), b.DoctorName
}

// ByDispensary groups bookings by the dispensary hosting the appointment.
func ByDispensary(b models.Booking) (string, string) {
	return entityKey(b.DispensaryID, b.DispensaryName), b.DispensaryName
}

// TopEntities ranks booking counts per entity and keeps the top five.
// Every booking counts regardless of status. The sort is descending by
// count; ties keep the order in which each entity was first encountered in
// the input. Zero qualifying entities yield a single "No Data" placeholder
// so the renderer always has a non-empty series.
func TopEntities(bookings []models.Booking, key EntityKey) models.ChartDataset {
	counts := map[string]int{}
	labelsByKey := map[string]string{}
	var order []string

	for _, b := range bookings {
		k, label := key(b)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			labelsByKey[k] = label
		}
		counts[k]++
	}

	if len(order) == 0 {
		return models.ChartDataset{
			Labels: []string{"No Data"},
			Datasets: []models.ChartSeries{{
				Label:           "Appointments",
				Data:            []int{0},
				BackgroundColor: []string{colorNeutral},
			}},
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topEntityLimit {
		order = order[:topEntityLimit]
	}

	labels := make([]string, 0, len(order))
	data := make([]int, 0, len(order))
	for _, k := range order {
		labels = append(labels, labelsByKey[k])
		data = append(data, counts[k])
	}

	return models.ChartDataset{
		Labels: labels,
		Datasets: []models.ChartSeries{{
			Label:           "Appointments",
			Data:            data,
			BackgroundColor: rankingPalette[:len(order)],
		}},
	}
}

// StatusDistribution buckets bookings over the four known statuses, in
// fixed order PENDING, CONFIRMED, CANCELLED, COMPLETED. All four labels
// are always present. Unrecognized status strings are dropped, so the
// distribution sums to the count of recognized bookings only.
func StatusDistribution(bookings []models.Booking) models.ChartDataset {
	counts := map[models.BookingStatus]int{}
	for _, b := range bookings {
		if b.Status.Known() {
			counts[b.Status]++
		}
	}

	labels := make([]string, 0, len(models.StatusOrder))
	data := make([]int, 0, len(models.StatusOrder))
	for _, status := range models.StatusOrder {
		labels = append(labels, string(status))
		data = append(data, counts[status])
	}

	return models.ChartDataset{
		Labels: labels,
		Datasets: []models.ChartSeries{{
			Label: "Appointments",
			Data:  data,
			BackgroundColor: []string{
				statusPendingColor,
				statusConfirmedColor,
				statusCancelledColor,
				statusCompletedColor,
			},
		}},
	}
}
