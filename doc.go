/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

/*

Package rn implements reference numbers (RN): short, check-digit protected
identifiers that many independent issuing authorities generate without
central coordination. The number encodes, recoverably, the issuing
authority, the deployment instance, the type of referenced entity, the
version of encoding scheme and the millisecond time stamp of issue.

Key features

↣ allocation does not require a central authority, the tuple ⟨authority,
instance, type⟩ partitions the space of numbers between issuers.

↣ numbers are human transcribable: 18 symbols of an alphabet without
visually confusable characters, grouped by six.

↣ transcription errors are detected. Any single symbol substitution of
a valid number is never a valid number.

↣ numbers are reversible to the issuing authority so that lookups can be
directed to the right place.

Identity Schema

The fields are packed into fixed width decimal form (packed form)

  3 digit    4 digit      3 digit    3 digit   10 digit           1 digit
  |-------|-----------|----------|--------|------------------|-------|
  ⟨millis⟩  ⟨authority⟩  ⟨instance⟩  ⟨type⟩    ⟨unix seconds⟩    ⟨version⟩

The packed form NN is extended with check digits so that CC = NN * 33² + cc
is divisible by 1087, the largest prime below 33². CC is written with
base-33 alphabet ABCDEFGHJKLMNPQRSTVWXYZ0123456789

  H31DDZ-TFSV8C-KELK2B  ⟷  468 1234 005 006 1523536491 0
                        ⟷  1234:5:06:2018-04-12T12:34:51.468Z:v0

The superseded calendar layout is available through ParseCalendar and
Calendar layout, it is never guessed from input.

Issuing numbers

Factory issues numbers with strictly increasing time stamps. Registry
holds one factory per tuple within the process and guards the tuple with
advisory file lock within the host

  registry := rn.NewRegistry()
  defer registry.Close()

  factory, err := registry.Factory(authority, instance, kind)
  ...
  id, err := factory.Generate()
  id.Encode()

The file lock does not span hosts. Deployments over multiple hosts shall
allocate distinct instance numbers to each host.
*/
package rn
