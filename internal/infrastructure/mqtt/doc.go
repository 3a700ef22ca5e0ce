// Package mqtt mirrors homecore state to an MQTT broker.
//
// The connection is outbound only. Client handles connect, auto-reconnect,
// the Last Will on homecore/system/status and publishing. StatePublisher
// is a home.Listener that turns Coordinator events into messages:
//
//	homecore/device/{id}/state       retained device JSON (empty on delete)
//	homecore/security/mode           retained {"status": "armed"|"disarmed"}
//	homecore/activity                each new activity entry
//	homecore/scene/{id}/activated    one message per activation
//	homecore/system/status           retained online/offline, plus LWT
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	pub := mqtt.NewStatePublisher(client, client.QoS(), 0, m)
//	coordinator.AddListener(pub)
//	go pub.Run(ctx)
package mqtt
