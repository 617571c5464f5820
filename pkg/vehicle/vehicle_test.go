package vehicle_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/tessie-api/tessie-go/mocks"
	"github.com/tessie-api/tessie-go/pkg/connector"
	"github.com/tessie-api/tessie-go/pkg/query"
	"github.com/tessie-api/tessie-go/pkg/vehicle"
)

const vin = "5YJ3E1EA7KF000001"

type adapter func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error)

var _ = Describe("Vehicle", func() {
	var (
		ctrl    *gomock.Controller
		gateway *mocks.Gateway
		car     *vehicle.Vehicle
		ctx     context.Context
		reply   connector.Response
	)

	expectRequest := func(method, path string, params query.Values) {
		gateway.EXPECT().Send(gomock.Any(), &connector.Request{
			Method: method,
			Path:   path,
			Params: params,
		}).Return(reply, nil)
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		gateway = mocks.NewGateway(ctrl)
		car = vehicle.New(gateway, vin)
		ctx = context.Background()
		reply = connector.Response{"result": true}
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	Describe("VIN", func() {
		It("returns the VIN unchanged", func() {
			Expect(car.VIN()).To(Equal(vin))
		})

		It("uses the VIN verbatim in request paths", func() {
			odd := vehicle.New(gateway, "abc-123 x")
			gateway.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req *connector.Request) (connector.Response, error) {
					Expect(req.Path).To(Equal("/abc-123 x/status"))
					return reply, nil
				})
			_, err := odd.Status(ctx)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("BatteryHealth", func() {
		It("omits distance_format when not provided", func() {
			car = vehicle.New(gateway, "5YJ123")
			expectRequest(http.MethodGet, "/5YJ123/battery_health", query.Values{
				"from": int64(1000),
				"to":   int64(2000),
			})
			rsp, err := car.BatteryHealth(ctx, 1000, 2000, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(rsp).To(Equal(reply))
		})

		It("sends distance_format when provided", func() {
			km := vehicle.DistanceKilometers
			expectRequest(http.MethodGet, "/"+vin+"/battery_health", query.Values{
				"from":            int64(0),
				"to":              int64(2000),
				"distance_format": vehicle.DistanceKilometers,
			})
			_, err := car.BatteryHealth(ctx, 0, 2000, &vehicle.BatteryHealthOptions{DistanceFormat: &km})
			Expect(err).ToNot(HaveOccurred())
		})
	})

	DescribeTable("parameterless commands",
		func(call adapter, action string) {
			expectRequest(http.MethodPost, "/"+vin+"/command/"+action, query.Values{})
			rsp, err := call(ctx, car)
			Expect(err).ToNot(HaveOccurred())
			Expect(rsp).To(Equal(reply))
		},
		Entry("Lock", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.Lock(ctx, nil) }, "lock"),
		Entry("Unlock", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.Unlock(ctx, nil) }, "unlock"),
		Entry("StartCharging", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.StartCharging(ctx, nil)
		}, "start_charging"),
		Entry("StopCharging", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.StopCharging(ctx, nil) }, "stop_charging"),
		Entry("OpenChargePort", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.OpenChargePort(ctx, nil)
		}, "open_charge_port"),
		Entry("CloseChargePort", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.CloseChargePort(ctx, nil)
		}, "close_charge_port"),
		Entry("StartClimate", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.StartClimate(ctx, nil) }, "start_climate"),
		Entry("StopClimate", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.StopClimate(ctx, nil) }, "stop_climate"),
		Entry("StartDefrost", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.StartDefrost(ctx, nil) }, "start_max_defrost"),
		Entry("StopDefrost", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.StopDefrost(ctx, nil) }, "stop_max_defrost"),
		Entry("StartSteeringWheelHeater", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.StartSteeringWheelHeater(ctx, nil)
		}, "start_steering_wheel_heater"),
		Entry("StopSteeringWheelHeater", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.StopSteeringWheelHeater(ctx, nil)
		}, "stop_steering_wheel_heater"),
		Entry("TriggerHomelink", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.TriggerHomelink(ctx, nil)
		}, "trigger_homelink"),
		Entry("Honk", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.Honk(ctx, nil) }, "honk"),
		Entry("Boombox", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.Boombox(ctx, nil) }, "remote_boombox"),
		Entry("EnableKeylessDriving", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.EnableKeylessDriving(ctx, nil)
		}, "remote_start"),
		Entry("FlashLights", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.FlashLights(ctx, nil) }, "flash"),
		Entry("EnableSentryMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.EnableSentryMode(ctx, nil)
		}, "enable_sentry"),
		Entry("DisableSentryMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.DisableSentryMode(ctx, nil)
		}, "disable_sentry"),
		Entry("CancelSoftwareUpdate", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.CancelSoftwareUpdate(ctx, nil)
		}, "cancel_software_update"),
		Entry("VentSunroof", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.VentSunroof(ctx, nil) }, "vent_sunroof"),
		Entry("CloseSunroof", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.CloseSunroof(ctx, nil) }, "close_sunroof"),
		Entry("OpenFrontTrunk", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.OpenFrontTrunk(ctx, nil)
		}, "activate_front_trunk"),
		Entry("OpenCloseRearTrunk", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.OpenCloseRearTrunk(ctx, nil)
		}, "activate_rear_trunk"),
		Entry("EnableValetMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.EnableValetMode(ctx, nil)
		}, "enable_valet"),
		Entry("DisableValetMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.DisableValetMode(ctx, nil)
		}, "disable_valet"),
		Entry("VentWindows", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.VentWindows(ctx, nil) }, "vent_windows"),
		Entry("CloseWindows", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) { return car.CloseWindows(ctx, nil) }, "close_windows"),
	)

	DescribeTable("parameterized commands",
		func(call adapter, action string, params query.Values) {
			expectRequest(http.MethodPost, "/"+vin+"/command/"+action, params)
			_, err := call(ctx, car)
			Expect(err).ToNot(HaveOccurred())
		},
		Entry("SetChargeLimit", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetChargeLimit(ctx, 80, nil)
		}, "set_charge_limit", query.Values{"percent": 80}),
		Entry("SetChargingAmps", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetChargingAmps(ctx, 0, nil)
		}, "set_charging_amps", query.Values{"amps": 0}),
		Entry("SetTemperature", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetTemperature(ctx, 21.5, nil)
		}, "set_temperatures", query.Values{"temperature": 21.5}),
		Entry("SetSeatHeat", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetSeatHeat(ctx, vehicle.SeatRearCenter, 3, nil)
		}, "set_seat_heat", query.Values{"seat": vehicle.SeatRearCenter, "level": 3}),
		Entry("SetBioweaponDefenseMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetBioweaponDefenseMode(ctx, false, nil)
		}, "set_bioweapon_mode", query.Values{"on": false}),
		Entry("SetClimateKeeperMode", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetClimateKeeperMode(ctx, vehicle.ClimateKeeperDog, nil)
		}, "set_climate_keeper_mode", query.Values{"mode": vehicle.ClimateKeeperDog}),
		Entry("SetScheduledCharging", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetScheduledCharging(ctx, true, 120, nil)
		}, "set_scheduled_charging", query.Values{"enable": true, "time": 120}),
		Entry("SetScheduledDeparture", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetScheduledDeparture(ctx, true, 450, nil)
		}, "set_scheduled_departure", query.Values{"enable": true, "departure_time": 450}),
		Entry("SetScheduledDeparture with options", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetScheduledDeparture(ctx, false, 0, &vehicle.DepartureOptions{
				CommandOptions:         vehicle.CommandOptions{WaitForCompletion: query.Ptr(true)},
				PreconditioningEnabled: query.Ptr(false),
				EndOffPeakTime:         query.Ptr(360),
			})
		}, "set_scheduled_departure", query.Values{
			"enable":                  false,
			"departure_time":          0,
			"preconditioning_enabled": false,
			"end_off_peak_time":       360,
			"wait_for_completion":     true,
		}),
		Entry("Share", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Share(ctx, "1 Main St", nil)
		}, "share", query.Values{"value": "1 Main St"}),
		Entry("Share with locale", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Share(ctx, "", &vehicle.ShareOptions{Locale: query.Ptr("en-US")})
		}, "share", query.Values{"value": "", "locale": "en-US"}),
		Entry("ScheduleSoftwareUpdate", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.ScheduleSoftwareUpdate(ctx, 0, nil)
		}, "schedule_software_update", query.Values{"in_seconds": 0}),
		Entry("SetSpeedLimit", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetSpeedLimit(ctx, 65, nil)
		}, "set_speed_limit", query.Values{"mph": 65}),
		Entry("EnableSpeedLimit", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.EnableSpeedLimit(ctx, "0123", nil)
		}, "enable_speed_limit", query.Values{"pin": "0123"}),
		Entry("DisableSpeedLimit", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.DisableSpeedLimit(ctx, "0123", nil)
		}, "disable_speed_limit", query.Values{"pin": "0123"}),
		Entry("ClearSpeedLimitPIN", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.ClearSpeedLimitPIN(ctx, "0123", nil)
		}, "clear_speed_limit_pin", query.Values{"pin": "0123"}),
	)

	Describe("CommandOptions", func() {
		It("sends zero values that were provided", func() {
			expectRequest(http.MethodPost, "/"+vin+"/command/lock", query.Values{
				"retry_duration":      0,
				"wait_for_completion": false,
			})
			_, err := car.Lock(ctx, &vehicle.CommandOptions{
				RetryDuration:     query.Ptr(0),
				WaitForCompletion: query.Ptr(false),
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("omits fields that were not provided", func() {
			expectRequest(http.MethodPost, "/"+vin+"/command/set_charge_limit", query.Values{
				"percent":        50,
				"retry_duration": 40,
			})
			_, err := car.SetChargeLimit(ctx, 50, &vehicle.CommandOptions{RetryDuration: query.Ptr(40)})
			Expect(err).ToNot(HaveOccurred())
		})
	})

	DescribeTable("queries",
		func(call adapter, method, resource string, params query.Values) {
			expectRequest(method, "/"+vin+"/"+resource, params)
			rsp, err := call(ctx, car)
			Expect(err).ToNot(HaveOccurred())
			Expect(rsp).To(Equal(reply))
		},
		Entry("State", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.State(ctx, nil)
		}, http.MethodGet, "state", query.Values{}),
		Entry("State without cache", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.State(ctx, &vehicle.StateOptions{UseCache: query.Ptr(false)})
		}, http.MethodGet, "state", query.Values{"use_cache": false}),
		Entry("Location", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Location(ctx)
		}, http.MethodGet, "location", query.Values{}),
		Entry("Weather", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Weather(ctx)
		}, http.MethodGet, "weather", query.Values{}),
		Entry("Status", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Status(ctx)
		}, http.MethodGet, "status", query.Values{}),
		Entry("TirePressure", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.TirePressure(ctx, &vehicle.TirePressureOptions{
				PressureFormat: query.Ptr(vehicle.PressurePSI),
				Interval:       query.Ptr(0),
			})
		}, http.MethodGet, "tire_pressure", query.Values{"pressure_format": vehicle.PressurePSI, "interval": 0}),
		Entry("Wake", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Wake(ctx)
		}, http.MethodPost, "wake", query.Values{}),
		Entry("Charges", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Charges(ctx, &vehicle.ChargesOptions{
				SuperchargersOnly: query.Ptr(true),
				OriginLatitude:    query.Ptr(37.4),
				From:              query.Ptr(int64(1700000000)),
			})
		}, http.MethodGet, "charges", query.Values{
			"superchargers_only": true,
			"origin_latitude":    37.4,
			"from":               int64(1700000000),
		}),
		Entry("SetChargeCost", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetChargeCost(ctx, 42, 0)
		}, http.MethodPost, "charges/42/set_cost", query.Values{"cost": 0.0}),
		Entry("Drives", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Drives(ctx, nil)
		}, http.MethodGet, "drives", query.Values{}),
		Entry("Drives filtered", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Drives(ctx, &vehicle.DrivesOptions{
				DistanceFormat:    query.Ptr(vehicle.DistanceMiles),
				TemperatureFormat: query.Ptr(vehicle.TemperatureFahrenheit),
				Tag:               query.Ptr(""),
				ExcludeTag:        query.Ptr(true),
				Format:            query.Ptr(vehicle.FormatJSON),
			})
		}, http.MethodGet, "drives", query.Values{
			"distance_format":    vehicle.DistanceMiles,
			"temperature_format": vehicle.TemperatureFahrenheit,
			"tag":                "",
			"exclude_tag":        true,
			"format":             vehicle.FormatJSON,
		}),
		Entry("DrivingPath", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.DrivingPath(ctx, &vehicle.DrivingPathOptions{Separate: query.Ptr(true)})
		}, http.MethodGet, "path", query.Values{"separate": true}),
		Entry("SetDriveTag", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.SetDriveTag(ctx, "101,102", "commute")
		}, http.MethodPost, "drives/set_tag", query.Values{"drives": "101,102", "tag": "commute"}),
		Entry("HistoricalStates", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.HistoricalStates(ctx, &vehicle.HistoricalStatesOptions{
				From:     query.Ptr(int64(1)),
				To:       query.Ptr(int64(2)),
				Condense: query.Ptr(false),
				Timezone: query.Ptr("UTC"),
			})
		}, http.MethodGet, "states", query.Values{
			"from":     int64(1),
			"to":       int64(2),
			"condense": false,
			"timezone": "UTC",
		}),
		Entry("LastIdleState", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.LastIdleState(ctx)
		}, http.MethodGet, "last_idle_state", query.Values{}),
		Entry("ConsumptionSinceCharge", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.ConsumptionSinceCharge(ctx, &vehicle.ConsumptionOptions{DistanceFormat: query.Ptr(vehicle.DistanceKilometers)})
		}, http.MethodGet, "consumption_since_charge", query.Values{"distance_format": vehicle.DistanceKilometers}),
		Entry("Idles", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
			return car.Idles(ctx, &vehicle.IdlesOptions{ExcludeOrigin: query.Ptr(false), OriginRadius: query.Ptr(0.0)})
		}, http.MethodGet, "idles", query.Values{"exclude_origin": false, "origin_radius": 0.0}),
	)

	Describe("Map", func() {
		It("returns the raw image", func() {
			image := []byte{0x89, 'P', 'N', 'G'}
			gateway.EXPECT().SendRaw(gomock.Any(), &connector.Request{
				Method: http.MethodGet,
				Path:   "/" + vin + "/map",
				Params: query.Values{"width": 300, "style": vehicle.MapStyleDark},
			}).Return(image, nil)
			data, err := car.Map(ctx, &vehicle.MapOptions{Width: query.Ptr(300), Style: query.Ptr(vehicle.MapStyleDark)})
			Expect(err).ToNot(HaveOccurred())
			Expect(data).To(Equal(image))
		})
	})

	Describe("CSV exports", func() {
		csv := []byte("started_at,ended_at\n1,2\n")

		expectCSV := func(resource string, params query.Values) {
			gateway.EXPECT().SendRaw(gomock.Any(), &connector.Request{
				Method: http.MethodGet,
				Path:   "/" + vin + "/" + resource,
				Params: params,
			}).Return(csv, nil)
		}

		It("requests CSV without decoding the body", func() {
			expectCSV("drives", query.Values{"format": vehicle.FormatCSV})
			data, err := car.DrivesCSV(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(data).To(Equal(csv))
		})

		It("overrides a JSON format", func() {
			expectCSV("charges", query.Values{"format": vehicle.FormatCSV, "superchargers_only": false})
			data, err := car.ChargesCSV(ctx, &vehicle.ChargesOptions{
				Format:            query.Ptr(vehicle.FormatJSON),
				SuperchargersOnly: query.Ptr(false),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(data).To(Equal(csv))
		})

		It("keeps the remaining options", func() {
			expectCSV("states", query.Values{"format": vehicle.FormatCSV, "from": int64(1), "interval": 0})
			_, err := car.HistoricalStatesCSV(ctx, &vehicle.HistoricalStatesOptions{From: query.Ptr(int64(1)), Interval: query.Ptr(0)})
			Expect(err).ToNot(HaveOccurred())

			expectCSV("idles", query.Values{"format": vehicle.FormatCSV})
			_, err = car.IdlesCSV(ctx, &vehicle.IdlesOptions{})
			Expect(err).ToNot(HaveOccurred())

			expectCSV("tire_pressure", query.Values{"format": vehicle.FormatCSV, "pressure_format": vehicle.PressureBar})
			_, err = car.TirePressureCSV(ctx, &vehicle.TirePressureOptions{PressureFormat: query.Ptr(vehicle.PressureBar)})
			Expect(err).ToNot(HaveOccurred())
		})

		DescribeTable("JSON methods refuse CSV",
			func(call adapter) {
				rsp, err := call(ctx, car)
				Expect(err).To(MatchError(vehicle.ErrCSVFormat))
				Expect(rsp).To(BeNil())
			},
			Entry("Charges", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
				return car.Charges(ctx, &vehicle.ChargesOptions{Format: query.Ptr(vehicle.FormatCSV)})
			}),
			Entry("Drives", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
				return car.Drives(ctx, &vehicle.DrivesOptions{Format: query.Ptr(vehicle.FormatCSV)})
			}),
			Entry("HistoricalStates", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
				return car.HistoricalStates(ctx, &vehicle.HistoricalStatesOptions{Format: query.Ptr(vehicle.FormatCSV)})
			}),
			Entry("Idles", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
				return car.Idles(ctx, &vehicle.IdlesOptions{Format: query.Ptr(vehicle.FormatCSV)})
			}),
			Entry("TirePressure", func(ctx context.Context, car *vehicle.Vehicle) (connector.Response, error) {
				return car.TirePressure(ctx, &vehicle.TirePressureOptions{Format: query.Ptr(vehicle.FormatCSV)})
			}),
		)
	})

	Describe("errors", func() {
		It("are returned unchanged", func() {
			failure := errors.New("vehicle asleep")
			gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, failure).Times(1)
			rsp, err := car.Honk(ctx, nil)
			Expect(err).To(BeIdenticalTo(failure))
			Expect(rsp).To(BeNil())
		})
	})

	Describe("methods", func() {
		It("do not depend on parameter values", func() {
			gateway.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req *connector.Request) (connector.Response, error) {
					Expect(req.Method).To(Equal(http.MethodPost))
					return reply, nil
				}).Times(2)
			_, err := car.SetBioweaponDefenseMode(ctx, true, nil)
			Expect(err).ToNot(HaveOccurred())
			_, err = car.SetBioweaponDefenseMode(ctx, false, &vehicle.CommandOptions{RetryDuration: query.Ptr(1)})
			Expect(err).ToNot(HaveOccurred())
		})
	})
})
