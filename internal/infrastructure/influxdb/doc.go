// Package influxdb records homecore state changes in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Recorder listens to
// Coordinator events and writes two measurements:
//
//	device_state   tags device_id, kind, room_id; fields on, online and
//	               brightness / current_temperature / target_temperature /
//	               locked / recording by kind
//	security_mode  field armed (0 or 1)
//
// Writes are non-blocking and batched according to batch_size and
// flush_interval; asynchronous write errors are delivered to the
// SetOnError callback.
//
// Usage:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	coordinator.AddListener(influxdb.NewRecorder(client))
package influxdb
